package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger: человекочитаемый вывод в stderr + файл с ротацией.
// stdout остаётся за диалогом с пользователем.
func SetupLogger(cfg Config) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, console io.Writer) zerolog.Logger {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}}
	if cfg.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	mw := zerolog.MultiLevelWriter(writers...)
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(mw).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
