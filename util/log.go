// Package util holds the logging setup shared by the binaries. A server
// speaking LSP over stdio must never write logs to stdout, so everything goes
// to stderr or, when configured, to a file.
package util

import (
	"log/slog"
	"os"
)

// SetupLogging installs a JSON slog logger as the default. path may be empty,
// in which case stderr is used; a bad path also falls back to stderr rather
// than failing server startup.
func SetupLogging(path string) *slog.Logger {
	out := os.Stderr
	if path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}
