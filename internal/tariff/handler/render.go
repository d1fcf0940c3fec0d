package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tariff-sage/internal/tariff/model"
)

const maxCellWidth = 50 // длинные ячейки режем с "..."

// styles привязаны к конкретному writer: в пайпе/файле цвета не выводятся.
type styles struct {
	header lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true),
		accent: r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// renderTable — таблица в духе консольного вывода датафрейма: индекс строки
// слева, колонки выровнены вправо по ширине на экране.
func renderTable(st styles, columns []string, recs []model.Record) string {
	cells := make([][]string, len(recs))
	widths := make([]int, len(columns)+1)
	for i, rec := range recs {
		row := make([]string, len(columns)+1)
		row[0] = strconv.Itoa(rec.Index)
		for j, col := range columns {
			c, _ := rec.Get(col)
			row[j+1] = displayCell(c)
		}
		for j, v := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(v))
		}
		cells[i] = row
	}
	head := make([]string, len(columns)+1)
	for j, col := range columns {
		head[j+1] = runewidth.Truncate(col, maxCellWidth, "...")
		widths[j+1] = max(widths[j+1], runewidth.StringWidth(head[j+1]))
	}

	var sb strings.Builder
	sb.WriteString(st.header.Render(joinRow(head, widths)))
	sb.WriteByte('\n')
	for _, row := range cells {
		sb.WriteString(joinRow(row, widths))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func joinRow(vals []string, widths []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = runewidth.FillLeft(v, widths[i])
	}
	return strings.Join(parts, "  ")
}

func displayCell(c model.Cell) string {
	if c.IsEmpty() {
		return "NaN"
	}
	s := strings.Join(strings.Fields(c.String()), " ")
	return runewidth.Truncate(s, maxCellWidth, "...")
}
