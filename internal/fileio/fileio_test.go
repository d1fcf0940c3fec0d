package fileio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"tariff-sage/internal/tariff/model"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want model.SourceKind
		ok   bool
	}{
		{"a.csv", model.Delimited, true},
		{"A.TSV", model.Delimited, true},
		{"a.json", model.Structured, true},
		{"a.yml", model.Structured, true},
		{"a.xlsx", model.Spreadsheet, true},
		{"OPCS.XLS", model.Spreadsheet, true},
		{"notes.txt", "", false},
		{"noext", "", false},
	}
	for _, tc := range tests {
		got, ok := KindOf(tc.file)
		assert.Equal(t, tc.ok, ok, tc.file)
		assert.Equal(t, tc.want, got, tc.file)
	}
}

func TestReadAny_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ReadAny(strings.NewReader("x"), "prices.txt", Options{})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestReadCSV_TypesPerColumn(t *testing.T) {
	t.Parallel()

	src := "code,description,price,,price\n" +
		"A1,hip replacement,100,x,1\n" +
		"\n" +
		"0012,knee,NA,,2.5\n"
	tables, err := ReadAny(strings.NewReader(src), "t.csv", Options{HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tb := tables[0]
	assert.Equal(t, []string{"code", "description", "price", "Column 4", "price.1"}, tb.Columns)
	require.Len(t, tb.Rows, 2, "blank line skipped")

	// code has a non-numeric value, so the whole column stays text
	assert.Equal(t, model.TextCell("0012"), tb.Rows[1][0])
	assert.Equal(t, model.NumberCell(100), tb.Rows[0][2])
	assert.True(t, tb.Rows[1][2].IsEmpty(), "NA becomes empty")
	assert.True(t, tb.Rows[1][3].IsEmpty())
	assert.Equal(t, "2.5", tb.Rows[1][4].String())
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	t.Parallel()

	tables, err := ReadAny(strings.NewReader("a,b,c\n1\n"), "t.csv", Options{})
	require.NoError(t, err)
	require.Len(t, tables[0].Rows, 1)
	row := tables[0].Rows[0]
	assert.Equal(t, "1", row[0].String())
	assert.True(t, row[1].IsEmpty())
	assert.True(t, row[2].IsEmpty())
}

func TestReadCSV_HeaderRow(t *testing.T) {
	t.Parallel()

	src := "Tariff workbook,,\ncode,description,price\nA1,hip,10\n"
	tables, err := ReadAny(strings.NewReader(src), "t.csv", Options{HeaderRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "description", "price"}, tables[0].Columns)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "hip", tables[0].Rows[0][1].String())
}

func TestReadCSV_Windows1251(t *testing.T) {
	t.Parallel()

	lines := []string{
		"1,замена тазобедренного сустава эндопротезом",
		"2,удаление катаракты с имплантацией хрусталика",
		"3,консультация врача терапевта первичная",
		"4,ультразвуковое исследование органов брюшной полости",
	}
	text := "код,описание\n" + strings.Repeat(strings.Join(lines, "\n")+"\n", 10)
	enc, err := charmap.Windows1251.NewEncoder().String(text)
	require.NoError(t, err)

	tables, err := ReadAny(strings.NewReader(enc), "ru.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"код", "описание"}, tables[0].Columns)
	assert.Equal(t, "замена тазобедренного сустава эндопротезом", tables[0].Rows[0][1].String())
}

func TestReadTSV(t *testing.T) {
	t.Parallel()

	tables, err := ReadAny(strings.NewReader("code\tdescription\nB2\tcataract surgery\n"), "t.tsv", Options{})
	require.NoError(t, err)
	assert.Equal(t, "cataract surgery", tables[0].Rows[0][1].String())
}

func TestReadCSV_Empty(t *testing.T) {
	t.Parallel()

	_, err := ReadAny(strings.NewReader(""), "empty.csv", Options{})
	require.ErrorIs(t, err, ErrEmpty)
}

func TestReadJSON_Records(t *testing.T) {
	t.Parallel()

	src := `[
		{"code": "A1", "description": "hip replacement", "price": 1200.5},
		{"code": "B2", "price": null, "day_case": true, "extra": {"k": 1}}
	]`
	tables, err := ReadAny(strings.NewReader(src), "t.json", Options{})
	require.NoError(t, err)
	tb := tables[0]
	assert.Equal(t, []string{"code", "description", "price", "day_case", "extra"}, tb.Columns)
	require.Len(t, tb.Rows, 2)
	assert.Equal(t, model.NumberCell(1200.5), tb.Rows[0][2])
	assert.True(t, tb.Rows[0][3].IsEmpty())
	assert.True(t, tb.Rows[1][1].IsEmpty())
	assert.True(t, tb.Rows[1][2].IsEmpty())
	assert.Equal(t, "true", tb.Rows[1][3].String())
	assert.Equal(t, `{"k": 1}`, tb.Rows[1][4].String())
}

func TestReadJSON_Columns(t *testing.T) {
	t.Parallel()

	src := `{"code": ["A1", "B2"], "price": [1, 2]}`
	tables, err := ReadAny(strings.NewReader(src), "t.json", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "price"}, tables[0].Columns)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, "B2", tables[0].Rows[1][0].String())
	assert.Equal(t, model.NumberCell(2), tables[0].Rows[1][1])
}

func TestReadJSON_Invalid(t *testing.T) {
	t.Parallel()

	for _, src := range []string{`{"code": [1, 2], "x": [1]}`, `[1, 2]`, `"text"`, `[{"a": 1}`} {
		_, err := ReadAny(strings.NewReader(src), "bad.json", Options{})
		assert.Error(t, err, src)
	}
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	src := "- code: A1\n  description: hip replacement\n  price: 100\n" +
		"- code: B2\n  notes: ~\n"
	tables, err := ReadAny(strings.NewReader(src), "t.yaml", Options{})
	require.NoError(t, err)
	tb := tables[0]
	assert.Equal(t, []string{"code", "description", "price", "notes"}, tb.Columns)
	assert.Equal(t, model.NumberCell(100), tb.Rows[0][2])
	assert.True(t, tb.Rows[1][1].IsEmpty())
	assert.True(t, tb.Rows[1][3].IsEmpty())

	_, err = ReadAny(strings.NewReader("code: A1\n"), "t.yml", Options{})
	assert.Error(t, err)
}

func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	data := writeWorkbook(t, map[string][][]any{
		"HRG": {{"code", "description", "tariff"}, {"HN12", "hip procedures", 5400}},
		"ICD": {{"code", "title"}, {"K35", "appendicitis"}},
	}, []string{"HRG", "ICD"})

	tables, err := ReadAny(bytes.NewReader(data), "tariff.xlsx", Options{HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, tables, 1, "first sheet only by default")
	assert.Equal(t, []string{"code", "description", "tariff"}, tables[0].Columns)
	assert.Equal(t, model.NumberCell(5400), tables[0].Rows[0][2])

	tables, err = ReadAny(bytes.NewReader(data), filepath.Join("dir", "tariff.xlsx"), Options{AllSheets: true})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, filepath.Join("dir", "tariff.xlsx")+"#ICD", tables[1].Name)
	assert.Equal(t, "appendicitis", tables[1].Rows[0][1].String())
}

func TestReadXLSX_Corrupt(t *testing.T) {
	t.Parallel()

	_, err := ReadAny(strings.NewReader("not a zip"), "broken.xlsx", Options{})
	assert.Error(t, err)
}

func TestReadXLS_Corrupt(t *testing.T) {
	t.Parallel()

	_, err := ReadAny(strings.NewReader("not an ole2 file"), "broken.xls", Options{})
	assert.Error(t, err)
}

func TestReadXLS(t *testing.T) {
	t.Parallel()

	// два листа: OPCS (с пропущенной строкой 3) и HRG
	data, err := os.ReadFile(filepath.Join("testdata", "tariff.xls"))
	require.NoError(t, err)

	tables, err := ReadAny(bytes.NewReader(data), "tariff.xls", Options{HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, tables, 1, "first sheet only by default")
	tb := tables[0]
	assert.Equal(t, "tariff.xls", tb.Name)
	assert.Equal(t, []string{"code", "description", "price"}, tb.Columns)
	require.Len(t, tb.Rows, 2)
	assert.Equal(t, model.TextCell("W37"), tb.Rows[0][0])
	assert.Equal(t, model.TextCell("total hip replacement"), tb.Rows[0][1])
	assert.Equal(t, model.NumberCell(5400), tb.Rows[0][2])
	assert.Equal(t, model.TextCell("C71"), tb.Rows[1][0])
	assert.Equal(t, model.NumberCell(950.5), tb.Rows[1][2])

	tables, err = ReadAny(bytes.NewReader(data), "tariff.xls", Options{HeaderRow: 1, AllSheets: true})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "tariff.xls#OPCS", tables[0].Name)
	assert.Equal(t, "tariff.xls#HRG", tables[1].Name)
	assert.Equal(t, []string{"code", "description"}, tables[1].Columns)
	require.Len(t, tables[1].Rows, 1)
	assert.Equal(t, "hip procedures", tables[1].Rows[0][1].String())
}
