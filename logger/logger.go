// ABOUTME: Structured debug logging built on zerolog
// ABOUTME: Writes JSON lines to a file because the terminal belongs to the UI

// Package logger builds the zerolog logger shared by the CLI and the TUI.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// DefaultDebugFile is used when --debug is given without --log-file
const DefaultDebugFile = "playlist-timer-debug.log"

// Config represents logger configuration
type Config struct {
	Level string // "debug", "info", "warn", "error"
	File  string // Log file path; empty disables logging
}

// New creates a logger for cfg. The returned closer releases the log file
// and is never nil.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, errors.Wrapf(err, "failed to open log file %s", cfg.File)
	}

	return NewWithWriter(f, cfg.Level), f, nil
}

// NewWithWriter creates a JSON logger writing to w at the given level
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl := ParseLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.CallerMarshalFunc = shortCaller

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if lvl == zerolog.DebugLevel {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

// ParseLevel parses the log level string, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// shortCaller keeps the last directory and file name ("tui/update.go:42")
func shortCaller(_ uintptr, file string, line int) string {
	parts := strings.Split(file, string(filepath.Separator))
	if len(parts) > 1 {
		return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
	}

	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
