// Package logging builds the engine's structured logger and scopes it per
// component, the way chunk/file management is logged throughout the
// example corpus this project draws its idioms from.
package logging

import (
	"log/slog"
	"os"
)

// New builds a slog.Logger writing to stdout, in either "json" or "text"
// format (text is the default for any other value).
func New(format string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// Scoped returns logger.With("component", component), falling back to
// slog.Default() when logger is nil so callers never need a nil check.
func Scoped(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
