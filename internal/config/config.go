package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tariff-sage/internal/tariff/model"
)

type Config struct {
	Files             []string
	DescriptionColumn string
	MaxResults        int
	SuggestThreshold  int
	HeaderRow         int
	AllSheets         bool
	ExitWord          string
	CSVOnError        string
	JSONOnError       string
	SheetOnError      string
	LogLevel          string
	LogFile           string
}

// Load читает .env (если есть) и переменные окружения. Уже заданные
// переменные окружения .env не перекрывает.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Files:             splitList(getenv("TARIFF_FILES", "")),
		DescriptionColumn: getenv("DESCRIPTION_COLUMN", "description"),
		MaxResults:        atoi(getenv("MAX_RESULTS", ""), 5),
		SuggestThreshold:  atoi(getenv("SUGGEST_THRESHOLD", ""), 80),
		HeaderRow:         atoi(getenv("HEADER_ROW", ""), 1),
		AllSheets:         toBool(getenv("ALL_SHEETS", ""), false),
		ExitWord:          getenv("EXIT_WORD", "exit"),
		CSVOnError:        getenv("CSV_ON_ERROR", string(model.Fail)),
		JSONOnError:       getenv("JSON_ON_ERROR", string(model.Fail)),
		SheetOnError:      getenv("SHEET_ON_ERROR", string(model.Skip)),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFile:           getenv("LOG_FILE", "logs/tariff-sage.log"),
	}
}

func (c Config) MatchOptions() model.Options {
	return model.Options{
		DescriptionColumn: c.DescriptionColumn,
		MaxResults:        c.MaxResults,
		SuggestThreshold:  c.SuggestThreshold,
	}
}

func (c Config) LoadOptions() model.LoadOptions {
	return model.LoadOptions{
		HeaderRow: c.HeaderRow,
		AllSheets: c.AllSheets,
		OnError: map[model.SourceKind]model.ErrorPolicy{
			model.Delimited:   model.ParseErrorPolicy(c.CSVOnError, model.Fail),
			model.Structured:  model.ParseErrorPolicy(c.JSONOnError, model.Fail),
			model.Spreadsheet: model.ParseErrorPolicy(c.SheetOnError, model.Skip),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
