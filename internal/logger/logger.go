// Package logger provides structured logging setup for fieldops.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/garzadist/fieldops/internal/config"
)

// New builds the process logger: JSON to stdout, a "service" attribute
// on every record, and source locations when running at debug level.
func New(cfg config.Logging) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	return slog.New(handler).With("service", cfg.Service)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
