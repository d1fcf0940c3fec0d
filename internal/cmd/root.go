package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tariff-sage/internal/config"
	"tariff-sage/internal/tariff/handler"
	"tariff-sage/internal/tariff/service"
)

type flags struct {
	descriptionColumn string
	limit             int
	threshold         int
	headerRow         int
	allSheets         bool
	exitWord          string
	csvOnError        string
	jsonOnError       string
	sheetOnError      string
	logLevel          string
	logFile           string
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	c := &cobra.Command{
		Use:   "tariff-sage [files...]",
		Short: "look up tariff and price list rows by free-text query",
		Long: `tariff-sage loads price lists (CSV, TSV, JSON, YAML, XLSX, XLS) into memory
and answers queries from stdin: rows whose cells contain any query word are
shown (first 5), otherwise the closest description is suggested.

Files are taken from the arguments or from TARIFF_FILES (comma separated).

Examples:
  tariff-sage opcs.xls icd10.xlsx hrg.csv
  TARIFF_FILES=prices.json tariff-sage --threshold 85
  tariff-sage --all-sheets --sheet-on-error fail workbook.xlsx`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSage(cmd, args, f)
		},
	}

	fl := c.Flags()
	fl.StringVar(&f.descriptionColumn, "description-column", "description", "column used for fuzzy suggestions (alternatives with |)")
	fl.IntVarP(&f.limit, "limit", "n", 5, "maximum number of matching rows shown (must be positive)")
	fl.IntVar(&f.threshold, "threshold", 80, "suggest only when the fuzzy score (0-100) is above this")
	fl.IntVar(&f.headerRow, "header-row", 1, "header row in delimited files and sheets (1-based)")
	fl.BoolVar(&f.allSheets, "all-sheets", false, "read every sheet of a workbook, not only the first")
	fl.StringVar(&f.exitWord, "exit-word", "exit", "word that ends the session (case-insensitive)")
	fl.StringVar(&f.csvOnError, "csv-on-error", "fail", "on unreadable CSV/TSV: skip or fail")
	fl.StringVar(&f.jsonOnError, "json-on-error", "fail", "on unreadable JSON/YAML: skip or fail")
	fl.StringVar(&f.sheetOnError, "sheet-on-error", "skip", "on unreadable XLSX/XLS: skip or fail")
	fl.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fl.StringVar(&f.logFile, "log-file", "logs/tariff-sage.log", "rotating log file (empty disables)")
	return c
}

// applyFlags: флаги, заданные явно, перекрывают окружение.
func applyFlags(c *cobra.Command, f *flags, args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Files = args
	}
	set := c.Flags().Changed
	if set("description-column") {
		cfg.DescriptionColumn = f.descriptionColumn
	}
	if set("limit") {
		cfg.MaxResults = f.limit
	}
	if set("threshold") {
		cfg.SuggestThreshold = f.threshold
	}
	if set("header-row") {
		cfg.HeaderRow = f.headerRow
	}
	if set("all-sheets") {
		cfg.AllSheets = f.allSheets
	}
	if set("exit-word") {
		cfg.ExitWord = f.exitWord
	}
	if set("csv-on-error") {
		cfg.CSVOnError = f.csvOnError
	}
	if set("json-on-error") {
		cfg.JSONOnError = f.jsonOnError
	}
	if set("sheet-on-error") {
		cfg.SheetOnError = f.sheetOnError
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if set("log-file") {
		cfg.LogFile = f.logFile
	}
}

func runSage(c *cobra.Command, args []string, f *flags) error {
	cfg := config.Load()
	applyFlags(c, f, args, &cfg)
	if len(cfg.Files) == 0 {
		return errors.New("no tariff files given: pass paths or set TARIFF_FILES")
	}
	if cfg.MaxResults <= 0 {
		return fmt.Errorf("limit must be positive, got %d", cfg.MaxResults)
	}

	logger := config.SetupLogger(cfg)
	out := c.OutOrStdout()

	fmt.Fprintln(out, "The Tariff Sage is now absorbing the ancient scrolls...")
	ds, err := service.Load(cfg.Files, cfg.LoadOptions(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("load tariffs")
		return err
	}
	fmt.Fprintln(out, "The Sage has integrated the knowledge.")

	res := service.NewResolver(ds, cfg.MatchOptions())
	if col, ok := res.DescriptionColumn(); ok {
		logger.Debug().Str("column", col).Msg("description column")
	} else {
		// прямой поиск работает и без неё, а вот подсказка упадёт
		logger.Warn().Str("column", cfg.DescriptionColumn).Strs("columns", ds.Columns()).Msg("description column not found")
	}

	if err := handler.NewSession(res, ds.Columns(), cfg.ExitWord, c.InOrStdin(), out, logger).Run(); err != nil {
		logger.Error().Err(err).Msg("session")
		return err
	}
	return nil
}
