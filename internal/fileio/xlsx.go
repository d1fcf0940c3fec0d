package fileio

import (
	"bytes"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, name string, opt Options) ([]Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	if !opt.AllSheets {
		sheets = sheets[:1]
	}

	out := make([]Table, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		out = append(out, sheetTable(name, sheet, rows, opt))
	}
	return out, nil
}

// sheetTable — общий хвост для .xlsx/.xls: шапка + типизация.
func sheetTable(name, sheet string, rows [][]string, opt Options) Table {
	if opt.AllSheets {
		name = name + "#" + sheet
	}
	if len(rows) == 0 {
		return Table{Name: name}
	}
	h := pickHeader(rows, opt.HeaderRow)
	return rowsToTable(name, rows, h, opt.HeaderRow)
}
