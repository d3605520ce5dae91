// Package logging configures the zerolog logger shared by the CLI and the
// HTTP function.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level, format and destination of log output.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	File   string // log file path; empty logs to stderr

	// NoColor disables console colours. Always off for file output.
	NoColor bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ConfigFromEnv reads DOGWORD_LOG_LEVEL, DOGWORD_LOG_FORMAT and
// DOGWORD_LOG_FILE.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:      "info",
		Format:     "console",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
	if level := os.Getenv("DOGWORD_LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}
	if format := os.Getenv("DOGWORD_LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}
	cfg.File = os.Getenv("DOGWORD_LOG_FILE")
	return cfg
}

// New builds a logger writing to the configured destination. Unknown levels
// fall back to info.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, output(cfg))
}

// NewWithWriter builds a logger for cfg that writes to w instead of the
// configured destination.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: cfg.NoColor || cfg.File != ""}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func output(cfg Config) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
