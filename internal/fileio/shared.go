package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tariff-sage/internal/tariff/model"
	"tariff-sage/internal/utils"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("no data in file")
)

// Table — одна прочитанная таблица (файл или лист) с типизированными ячейками.
type Table struct {
	Name    string // имя файла, для листов "file.xlsx#Sheet1"
	Columns []string
	Rows    [][]model.Cell
}

type Options struct {
	HeaderRow int  // строка заголовков (1-based)
	AllSheets bool // для .xlsx/.xls: все листы, а не только первый
}

// KindOf maps a file extension to its source kind.
func KindOf(filename string) (model.SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv":
		return model.Delimited, true
	case ".json", ".yaml", ".yml":
		return model.Structured, true
	case ".xlsx", ".xls":
		return model.Spreadsheet, true
	default:
		return "", false
	}
}

// ReadAny — выберет парсер по расширению. Таблиц может быть несколько (листы).
func ReadAny(r io.Reader, filename string, opt Options) ([]Table, error) {
	if opt.HeaderRow <= 0 {
		opt.HeaderRow = 1
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, filename, opt)
	case ".xls":
		return readXLS(r, filename, opt)
	case ".csv":
		return one(readCSV(r, filename, ',', opt.HeaderRow))
	case ".tsv":
		return one(readCSV(r, filename, '\t', opt.HeaderRow))
	case ".json":
		return one(readJSON(r, filename))
	case ".yaml", ".yml":
		return one(readYAML(r, filename))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
}

func one(t Table, err error) ([]Table, error) {
	if err != nil {
		return nil, err
	}
	return []Table{t}, nil
}

// pickHeader — берёт строку заголовков, подставляет Column N для пустых
// и нумерует повторы: "price", "price.1", ...
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	if len(rows) == 0 {
		return nil
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n, ok := seen[v]; ok {
			seen[v] = n + 1
			v = fmt.Sprintf("%s.%d", v, n+1)
		} else {
			seen[v] = 0
		}
		out[i] = v
	}
	return out
}

// rowsToTable — AoA строк в таблицу по заголовкам, полностью пустые строки
// пропускаются. Тип колонки выводится целиком: числовая, только если все
// непустые значения — числа.
func rowsToTable(name string, rows [][]string, headers []string, headerRow int) Table {
	start := headerRow // первая строка после заголовков
	if start < 1 {
		start = 1
	}
	var raw [][]string
	for r := start; r < len(rows); r++ {
		rec := make([]string, len(headers))
		empty := true
		for c := range headers {
			if c < len(rows[r]) {
				rec[c] = normalizeCell(rows[r][c])
			}
			if rec[c] != "" {
				empty = false
			}
		}
		if !empty {
			raw = append(raw, rec)
		}
	}

	numeric := make([]bool, len(headers))
	for c := range headers {
		numeric[c] = numericColumn(raw, c)
	}

	out := make([][]model.Cell, len(raw))
	for i, rec := range raw {
		cells := make([]model.Cell, len(headers))
		for c, v := range rec {
			cells[c] = typedCell(v, numeric[c])
		}
		out[i] = cells
	}
	return Table{Name: name, Columns: headers, Rows: out}
}

func numericColumn(rows [][]string, c int) bool {
	seen := false
	for _, rec := range rows {
		v := rec[c]
		if utils.IsMissing(v) {
			continue
		}
		if _, ok := utils.ParseNumber(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func typedCell(v string, numeric bool) model.Cell {
	if utils.IsMissing(v) {
		return model.Cell{}
	}
	if numeric {
		if f, ok := utils.ParseNumber(v); ok {
			return model.NumberCell(f)
		}
	}
	return model.TextCell(v)
}

// normalizeCell: NBSP/NNBSP → пробел, обрезка по краям.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
