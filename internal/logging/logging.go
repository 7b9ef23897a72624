package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns the application logger. Diagnostics go to stderr so they
// never interleave with command output or the TUI.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
