// Package logger builds the zerolog logger shared by the server components.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log output
type Config struct {
	// Level is a zerolog level name (debug, info, warn, error). Defaults to info.
	Level string

	// Format is "console" for human readable output or "json"
	Format string

	// Output defaults to stdout
	Output io.Writer
}

// New returns a logger with timestamps at the configured level
func New(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests and optional dependencies
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
