// Package logging builds the assistant's slog logger. Standard output
// belongs to the conversation, so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects level, format, and destination.
type Options struct {
	Level  string // "debug" | "info" | "warn" | "error"
	Format string // "text" | "json"
	File   string // empty discards
}

// New creates a logger writing to w. It does not set the global logger.
func New(level, format string, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Open creates a logger for opts. The returned close func releases the log
// file, if any, and is always non-nil.
func Open(opts Options) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return New(opts.Level, opts.Format, io.Discard), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: creating directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", opts.File, err)
	}
	return New(opts.Level, opts.Format, f), f.Close, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
