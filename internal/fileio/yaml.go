package fileio

import (
	"errors"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"tariff-sage/internal/tariff/model"
)

var errYAMLShape = errors.New("yaml: want a sequence of mappings")

// readYAML: последовательность мапп. Через yaml.Node, чтобы сохранить порядок ключей.
func readYAML(r io.Reader, name string) (Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrEmpty
		}
		return Table{}, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return Table{}, errYAMLShape
	}

	cols := newColumnSet()
	objs := make([]map[string]model.Cell, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return Table{}, errYAMLShape
		}
		obj := make(map[string]model.Cell, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			cols.add(key)
			obj[key] = yamlCell(item.Content[i+1])
		}
		objs = append(objs, obj)
	}
	return Table{Name: name, Columns: cols.names, Rows: cols.align(objs)}, nil
}

func yamlCell(n *yaml.Node) model.Cell {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		out, err := yaml.Marshal(n)
		if err != nil {
			return model.Cell{}
		}
		return model.TextCell(string(trimNewline(out)))
	}
	switch n.Tag {
	case "!!null":
		return model.Cell{}
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return model.NumberCell(f)
		}
		return model.TextCell(n.Value)
	default:
		return model.TextCell(n.Value)
	}
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
