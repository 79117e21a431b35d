// Package logging builds the slog loggers used by the triage binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Stderr is the log path that selects standard error.
const Stderr = "-"

// New creates a text logger writing to path. The TUI owns the terminal, so
// its logs normally go to a file; "-" or "" selects stderr. The returned
// closer should be deferred.
func New(path, level string) (*slog.Logger, func() error, error) {
	writer, closer, err := openOutput(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler), closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
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

func openOutput(path string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	path = strings.TrimSpace(path)
	if path == "" || path == Stderr {
		return os.Stderr, noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
