package app

import (
	"io"
	"log/slog"
)

// newLogger builds the slog.Logger for one App instance, writing to the
// app's error stream so document output on stdout stays clean. The global
// default logger is never touched; parallel apps in tests keep isolated
// log streams.
func newLogger(levelStr, formatStr string, errW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(levelStr)}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(errW, opts))
	}
	return slog.New(slog.NewTextHandler(errW, opts))
}

// parseLogLevel maps the CLI level names onto slog levels. Unknown names
// fall back to info; the CLI layer already rejects them.
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
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
