// Package logger builds the structured logger shared by the CLI, the
// MCP server and the core services. The logger is threaded explicitly;
// nothing in this module logs through a package-level default.
package logger

import (
	"io"
	"log/slog"
)

// New creates a text-handler logger writing to w at the given level.
// Passing a *slog.LevelVar lets the CLI raise verbosity after flag
// parsing without rebuilding the logger.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard creates a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
