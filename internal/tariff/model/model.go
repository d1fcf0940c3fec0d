package model

import (
	"strconv"
	"strings"
)

type CellKind uint8

const (
	Empty CellKind = iota // отсутствующее значение (zero value)
	Text
	Number
)

func (k CellKind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "empty"
	}
}

// Cell — значение ячейки: текст, число или пусто.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

func TextCell(s string) Cell   { return Cell{Kind: Text, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: Number, Num: f} }

func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// String renders the cell as comparable text.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Record — строка датасета. Колонки общие для всех строк датасета.
type Record struct {
	Index   int // номер строки в датасете (0-based, сквозной)
	columns []string
	pos     map[string]int
	cells   []Cell
}

func (r Record) Columns() []string { return append([]string(nil), r.columns...) }

func (r Record) Get(col string) (Cell, bool) {
	i, ok := r.pos[col]
	if !ok {
		return Cell{}, false
	}
	return r.cells[i], true
}

// Cells returns the cells in column order.
func (r Record) Cells() []Cell { return append([]Cell(nil), r.cells...) }

// Dataset собирается один раз через Builder и дальше только читается.
type Dataset struct {
	columns []string
	pos     map[string]int
	rows    [][]Cell
}

func (d *Dataset) Columns() []string { return append([]string(nil), d.columns...) }
func (d *Dataset) Len() int          { return len(d.rows) }

func (d *Dataset) HasColumn(col string) bool {
	_, ok := d.pos[col]
	return ok
}

func (d *Dataset) Record(i int) Record {
	return Record{Index: i, columns: d.columns, pos: d.pos, cells: d.rows[i]}
}

// Records returns every record in dataset order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.rows))
	for i := range d.rows {
		out[i] = d.Record(i)
	}
	return out
}

// Builder склеивает таблицы построчно: объединение колонок в порядке
// появления, недостающие ячейки остаются Empty.
type Builder struct {
	columns []string
	pos     map[string]int
	rows    [][]Cell
}

func NewBuilder() *Builder {
	return &Builder{pos: make(map[string]int)}
}

// Append adds rows whose cells are aligned to columns.
func (b *Builder) Append(columns []string, rows [][]Cell) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		p, ok := b.pos[c]
		if !ok {
			p = len(b.columns)
			b.pos[c] = p
			b.columns = append(b.columns, c)
		}
		idx[i] = p
	}
	for _, src := range rows {
		dst := make([]Cell, len(b.columns))
		for i := 0; i < len(columns) && i < len(src); i++ {
			dst[idx[i]] = src[i]
		}
		b.rows = append(b.rows, dst)
	}
}

func (b *Builder) Len() int { return len(b.rows) }

// Build pads every row to the final column set and freezes the result.
func (b *Builder) Build() *Dataset {
	n := len(b.columns)
	rows := make([][]Cell, len(b.rows))
	for i, r := range b.rows {
		if len(r) < n {
			padded := make([]Cell, n)
			copy(padded, r)
			r = padded
		}
		rows[i] = r
	}
	pos := make(map[string]int, len(b.pos))
	for k, v := range b.pos {
		pos[k] = v
	}
	return &Dataset{
		columns: append([]string(nil), b.columns...),
		pos:     pos,
		rows:    rows,
	}
}

type Options struct {
	DescriptionColumn string // колонка для fuzzy-подсказки
	MaxResults        int    // сколько прямых совпадений отдавать
	SuggestThreshold  int    // подсказка только если score строго больше (0..100)
}

func DefaultOptions() Options {
	return Options{DescriptionColumn: "description", MaxResults: 5, SuggestThreshold: 80}
}

type SourceKind string

const (
	Delimited   SourceKind = "delimited"
	Structured  SourceKind = "structured"
	Spreadsheet SourceKind = "spreadsheet"
)

type ErrorPolicy string

const (
	Skip ErrorPolicy = "skip"
	Fail ErrorPolicy = "fail"
)

// ParseErrorPolicy accepts "skip"/"fail" (any case); anything else yields def.
func ParseErrorPolicy(s string, def ErrorPolicy) ErrorPolicy {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case Skip:
		return Skip
	case Fail:
		return Fail
	default:
		return def
	}
}

type LoadOptions struct {
	HeaderRow int  // строка заголовков (1-based)
	AllSheets bool // читать все листы, а не только первый
	OnError   map[SourceKind]ErrorPolicy
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		HeaderRow: 1,
		OnError: map[SourceKind]ErrorPolicy{
			Delimited:   Fail,
			Structured:  Fail,
			Spreadsheet: Skip,
		},
	}
}

// Policy returns the error policy for a source kind; unknown kinds fail fast.
func (o LoadOptions) Policy(k SourceKind) ErrorPolicy {
	if p, ok := o.OnError[k]; ok {
		return p
	}
	return Fail
}

type Outcome uint8

const (
	NoMatch Outcome = iota
	Records
	Suggestion
)

func (o Outcome) String() string {
	switch o {
	case Records:
		return "records"
	case Suggestion:
		return "suggestion"
	default:
		return "no_match"
	}
}

type MatchResult struct {
	Outcome    Outcome
	Records    []Record // прямые совпадения, в порядке датасета
	Suggestion string   // текст из колонки описания
	Score      int      // лучший fuzzy score (0..100)
}
