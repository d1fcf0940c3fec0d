package fileio

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"tariff-sage/internal/tariff/model"
)

var errJSONShape = errors.New("json: want an array of objects or an object of column arrays")

// readJSON принимает массив объектов [{...}, ...] или колонки {"col": [...]}.
// Порядок колонок — порядок первого появления ключа.
func readJSON(r io.Reader, name string) (Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	if !gjson.ValidBytes(b) {
		return Table{}, fmt.Errorf("json: invalid document in %s", name)
	}
	doc := gjson.ParseBytes(b)
	switch {
	case doc.IsArray():
		return jsonRecords(name, doc)
	case doc.IsObject():
		return jsonColumns(name, doc)
	default:
		return Table{}, errJSONShape
	}
}

func jsonRecords(name string, doc gjson.Result) (Table, error) {
	cols := newColumnSet()
	var objs []map[string]model.Cell
	var shapeErr error
	doc.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			shapeErr = errJSONShape
			return false
		}
		obj := make(map[string]model.Cell)
		v.ForEach(func(k, val gjson.Result) bool {
			cols.add(k.String())
			obj[k.String()] = jsonCell(val)
			return true
		})
		objs = append(objs, obj)
		return true
	})
	if shapeErr != nil {
		return Table{}, shapeErr
	}
	return Table{Name: name, Columns: cols.names, Rows: cols.align(objs)}, nil
}

func jsonColumns(name string, doc gjson.Result) (Table, error) {
	cols := newColumnSet()
	var data [][]gjson.Result
	var shapeErr error
	doc.ForEach(func(k, v gjson.Result) bool {
		if !v.IsArray() {
			shapeErr = errJSONShape
			return false
		}
		vals := v.Array()
		if len(data) > 0 && len(vals) != len(data[0]) {
			shapeErr = fmt.Errorf("json: column %q has %d values, want %d", k.String(), len(vals), len(data[0]))
			return false
		}
		cols.add(k.String())
		data = append(data, vals)
		return true
	})
	if shapeErr != nil {
		return Table{}, shapeErr
	}
	n := 0
	if len(data) > 0 {
		n = len(data[0])
	}
	rows := make([][]model.Cell, n)
	for i := range rows {
		row := make([]model.Cell, len(data))
		for c := range data {
			row[c] = jsonCell(data[c][i])
		}
		rows[i] = row
	}
	return Table{Name: name, Columns: cols.names, Rows: rows}, nil
}

func jsonCell(v gjson.Result) model.Cell {
	switch v.Type {
	case gjson.Null:
		return model.Cell{}
	case gjson.Number:
		return model.NumberCell(v.Num)
	case gjson.String:
		return model.TextCell(v.Str)
	default:
		return model.TextCell(v.Raw)
	}
}

// columnSet — колонки в порядке первого появления.
type columnSet struct {
	names []string
	pos   map[string]int
}

func newColumnSet() *columnSet { return &columnSet{pos: make(map[string]int)} }

func (c *columnSet) add(name string) {
	if _, ok := c.pos[name]; ok {
		return
	}
	c.pos[name] = len(c.names)
	c.names = append(c.names, name)
}

func (c *columnSet) align(objs []map[string]model.Cell) [][]model.Cell {
	rows := make([][]model.Cell, len(objs))
	for i, obj := range objs {
		row := make([]model.Cell, len(c.names))
		for k, v := range obj {
			row[c.pos[k]] = v
		}
		rows[i] = row
	}
	return rows
}
