// Надёжный парсер .xls: фиксируем ширину таблицы сами и читаем все ячейки до неё.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	xls "github.com/extrame/xls"
)

// sheetRow: WorkSheet.Row паникует, если строки нет в листе (пропуск между строками)
func sheetRow(sheet *xls.WorkSheet, i int) (r *xls.Row) {
	defer func() {
		if recover() != nil {
			r = nil
		}
	}()
	return sheet.Row(i)
}

// вычисляем "реальную" ширину: пробегаем разумное число колонок и ищем непустые
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 512
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheetRow(sheet, i)
		if r == nil {
			continue
		}
		for j := maxCols; j < probeMax; j++ {
			if v := normalizeCell(r.Col(j)); v != "" {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func readXLS(r io.Reader, name string, opt Options) (out []Table, err error) {
	// extrame/xls паникует на битых файлах — превращаем в ошибку
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("xls: malformed workbook %s: %v", name, rec)
		}
	}()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// старые выгрузки бывают в cp1251, но чаще utf-8
	var wb *xls.WorkBook
	tryCharsets := []string{"utf-8", "windows-1251"}
	var lastErr error
	for _, ch := range tryCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	n := wb.NumSheets()
	if n == 0 {
		return nil, ErrEmpty
	}
	if !opt.AllSheets {
		n = 1
	}

	out = make([]Table, 0, n)
	for s := 0; s < n; s++ {
		sheet := wb.GetSheet(s)
		if sheet == nil {
			continue
		}
		out = append(out, sheetTable(name, sheet.Name, xlsRows(sheet), opt))
	}
	return out, nil
}

// фиксируем ширину и читаем все строки до неё (НЕ полагаемся на Row.LastCol())
func xlsRows(sheet *xls.WorkSheet) [][]string {
	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = normalizeCell(row.Col(j)) // безопасно: пустые -> ""
			}
		}
		rows = append(rows, cols)
	}
	return rows
}
