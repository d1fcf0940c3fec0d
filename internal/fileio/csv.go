package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV reads a delimited file with headerRow (1-based), auto-detecting encoding and converting to UTF-8.
// It supports UTF-8 and Windows-1251 out of the box.
func readCSV(r io.Reader, name string, comma rune, headerRow int) (Table, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "windows-1251", "cp1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
	default:
		// assume UTF-8; strip BOM if present
		if b, _ := br.Peek(3); len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
			_, _ = br.Discard(3)
		}
	}

	cr := csv.NewReader(dec)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmpty
	}
	h := pickHeader(rows, headerRow)
	return rowsToTable(name, rows, h, headerRow), nil
}
