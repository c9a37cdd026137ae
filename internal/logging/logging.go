// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// levels maps configured level names to slog levels.
var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SetupLogger installs a stderr logger as the slog default.
// level is one of debug, info, warn or error; format is text or json.
func SetupLogger(level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, format)))
}

// NewHandler builds a handler writing to w. Formats other than json use text.
func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelInfo
}

// WithComponent returns the default logger tagged with component, so every
// package's output can be filtered by its source.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
