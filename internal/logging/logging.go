// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/config"
)

// Configure returns a logger writing to stdout at the configured level.
// Unknown or empty levels fall back to info.
func Configure(cfg config.Config) zerolog.Logger {
	return New(os.Stdout, cfg)
}

// New is Configure with an explicit writer.
func New(w io.Writer, cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("handler", cfg.Handler).
		Logger()
}
