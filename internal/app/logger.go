package app

import (
	"io"
	"log/slog"
)

// newLogger builds an isolated logger writing to w; the global default is
// left alone. Levels are the names accepted by slog ("debug", "warn", ...),
// anything else logs at info.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
