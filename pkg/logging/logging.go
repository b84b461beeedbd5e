// Package logging configures the process-wide log/slog logger.
//
// Usage:
//
//	logging.Setup("info", "text")  // colored tint output on stderr
//	logging.Setup("debug", "json") // JSON lines on stdout
//
// An empty level falls back to the LOG_LEVEL environment variable
// (debug, info, warn, error; default info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger for the given level and format
// ("text" or "json").
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, os.Stdout, level, format))
}

// New builds a logger without installing it. Text output goes to textOut,
// JSON output to jsonOut.
func New(textOut, jsonOut io.Writer, level, format string) *slog.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl := ParseLevel(level)

	if format == "json" {
		return slog.New(slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(textOut, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// ParseLevel maps debug, warn and error to their slog levels; anything else
// is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
