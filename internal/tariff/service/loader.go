package service

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"tariff-sage/internal/fileio"
	"tariff-sage/internal/tariff/model"
)

// Load — читает файлы по порядку и склеивает их в один датасет.
// Неизвестное расширение — предупреждение и пропуск; ошибка чтения —
// по политике для вида источника (skip: лог и пропуск, fail: ошибка наружу).
func Load(paths []string, opt model.LoadOptions, logger zerolog.Logger) (*model.Dataset, error) {
	start := time.Now()
	b := model.NewBuilder()
	loaded := 0

	for _, path := range paths {
		kind, ok := fileio.KindOf(path)
		if !ok {
			logger.Warn().Str("file", path).Msg("skipping unsupported file type")
			continue
		}

		tables, err := readFile(path, opt)
		if err != nil {
			if opt.Policy(kind) == model.Skip {
				logger.Error().Err(err).Str("file", path).Str("kind", string(kind)).Msg("skipping unreadable file")
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		rows := 0
		for _, t := range tables {
			b.Append(t.Columns, t.Rows)
			rows += len(t.Rows)
		}
		loaded++
		logger.Info().
			Str("file", path).
			Str("kind", string(kind)).
			Int("tables", len(tables)).
			Int("rows", rows).
			Msg("file processed")
	}

	ds := b.Build()
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w (%d of %d files read)", ErrEmptyDataset, loaded, len(paths))
	}
	logger.Info().
		Int("files", loaded).
		Int("rows", ds.Len()).
		Int("columns", len(ds.Columns())).
		Dur("elapsed", time.Since(start)).
		Msg("dataset ready")
	return ds, nil
}

func readFile(path string, opt model.LoadOptions) ([]fileio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fileio.ReadAny(f, path, fileio.Options{HeaderRow: opt.HeaderRow, AllSheets: opt.AllSheets})
}
