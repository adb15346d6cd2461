package app

import (
	"io"
	"log/slog"
)

// newLogger creates a new slog.Logger instance. It does not set the global
// default, so multiple App instances can carry independent loggers.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "text" {
		handler = slog.NewTextHandler(outW, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
