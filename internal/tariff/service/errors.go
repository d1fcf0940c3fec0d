package service

import "errors"

var (
	// ErrEmptyDataset — после загрузки не осталось ни одной строки.
	ErrEmptyDataset = errors.New("no tariff records loaded")
	// ErrMissingColumn — колонка описания не найдена; это ошибка конфигурации.
	ErrMissingColumn = errors.New("description column not found")
)
