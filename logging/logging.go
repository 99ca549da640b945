// Package logging builds the leveled loggers used by the weathering
// commands.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog.Level. Supported values are
// "debug", "info", "warn", and "error" (case-insensitive). Unknown values
// default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel returns true if s names a level ParseLevel understands.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// New creates a leveled text logger writing to w.
func New(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}
