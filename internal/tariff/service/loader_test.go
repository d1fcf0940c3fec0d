package service

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-sage/internal/tariff/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_SkipsUnsupportedAndConcatenates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeFile(t, dir, "opcs.csv", "code,description\nW37,total hip replacement\nC71,cataract extraction\n")
	jsonPath := writeFile(t, dir, "icd.json", `[{"description": "appendicitis", "price": 250}]`)
	txtPath := writeFile(t, dir, "notes.txt", "hip")

	var buf bytes.Buffer
	ds, err := Load([]string{csvPath, txtPath, jsonPath}, model.DefaultLoadOptions(), zerolog.New(&buf))
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "description", "price"}, ds.Columns())
	require.Equal(t, 3, ds.Len())

	first := ds.Record(0)
	price, ok := first.Get("price")
	require.True(t, ok)
	assert.True(t, price.IsEmpty(), "absent column filled with empty")

	last := ds.Record(2)
	assert.Equal(t, 2, last.Index)
	code, _ := last.Get("code")
	assert.True(t, code.IsEmpty())
	desc, _ := last.Get("description")
	assert.Equal(t, "appendicitis", desc.String())
	p, _ := last.Get("price")
	assert.Equal(t, "250", p.String())

	logs := buf.String()
	assert.Contains(t, logs, "skipping unsupported file type")
	assert.Contains(t, logs, "notes.txt")
	assert.Contains(t, logs, "dataset ready")
}

func TestLoad_SpreadsheetFailureSkippedByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "hrg.xlsx", "definitely not a workbook")
	good := writeFile(t, dir, "opcs.csv", "code,description\nW37,total hip replacement\n")

	var buf bytes.Buffer
	ds, err := Load([]string{bad, good}, model.DefaultLoadOptions(), zerolog.New(&buf))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Contains(t, buf.String(), "skipping unreadable file")
	assert.Contains(t, buf.String(), "hrg.xlsx")
}

func TestLoad_DelimitedAndStructuredFailFast(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "opcs.csv", "code,description\nW37,total hip replacement\n")
	badJSON := writeFile(t, dir, "icd.json", `{"description": [`)
	missingCSV := filepath.Join(dir, "missing.csv")

	_, err := Load([]string{good, badJSON}, model.DefaultLoadOptions(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icd.json")

	_, err = Load([]string{missingCSV, good}, model.DefaultLoadOptions(), zerolog.Nop())
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_PolicyOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "opcs.csv", "code,description\nW37,total hip replacement\n")
	badXLSX := writeFile(t, dir, "hrg.xlsx", "nope")

	opt := model.DefaultLoadOptions()
	opt.OnError[model.Delimited] = model.Skip
	ds, err := Load([]string{filepath.Join(dir, "missing.csv"), good}, opt, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	opt = model.DefaultLoadOptions()
	opt.OnError[model.Spreadsheet] = model.Fail
	_, err = Load([]string{good, badXLSX}, opt, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoad_EmptyDataset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "hip")
	emptyJSON := writeFile(t, dir, "empty.json", `[]`)

	_, err := Load([]string{txt}, model.DefaultLoadOptions(), zerolog.Nop())
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Load([]string{emptyJSON}, model.DefaultLoadOptions(), zerolog.Nop())
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Load(nil, model.DefaultLoadOptions(), zerolog.Nop())
	require.ErrorIs(t, err, ErrEmptyDataset)
}
