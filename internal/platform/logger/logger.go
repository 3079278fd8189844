package logger

import (
	"log/slog"
	"os"
)

// New returns a text slog logger writing to stderr. Components receive it by
// injection; nothing in this module logs through a package-level default.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
