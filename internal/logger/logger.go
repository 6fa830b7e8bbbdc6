// Package logger builds the default diagnostic logger. Diagnostics go to
// stderr; the metrics table and the event stream remain the authoritative
// record of scheduling outcomes.
package logger

import (
	"log/slog"
	"os"
)

// Build returns a JSON logger writing to stderr.
func Build() *slog.Logger {
	ops := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, ops))
}

// ErrAttr wraps an error as a slog attribute.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
