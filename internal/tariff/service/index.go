package service

import (
	"unicode/utf8"

	"tariff-sage/internal/tariff/model"
)

// index — тексты ячеек, посчитанные один раз при старте.
// Датасет неизменяемый, поэтому индекс тоже только читается.
type index struct {
	cells   [][]string // fold(cell) по строкам, в порядке колонок
	descCol string
	hasDesc bool
	desc    []candidate
}

type candidate struct {
	text string // как в файле, для подсказки
	proc string // после process(), для fuzzy
	n    int    // длина proc в рунах
}

func buildIndex(ds *model.Dataset, descWant string) *index {
	idx := &index{cells: make([][]string, ds.Len())}
	idx.descCol, idx.hasDesc = resolveColumn(ds.Columns(), descWant)

	for i, rec := range ds.Records() {
		cells := rec.Cells()
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = fold(c.String())
		}
		idx.cells[i] = row

		if !idx.hasDesc {
			continue
		}
		c, _ := rec.Get(idx.descCol)
		if c.IsEmpty() {
			continue
		}
		text := c.String()
		if p := process(text); p != "" {
			idx.desc = append(idx.desc, candidate{text: text, proc: p, n: utf8.RuneCountInString(p)})
		}
	}
	return idx
}
