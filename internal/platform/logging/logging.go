// Package logging carries a scoped *slog.Logger through context.Context so
// services log with whatever attributes the caller attached (operation id,
// actor, command name).
package logging

import (
	"context"
	"log/slog"
	"os"
)

// contextKey prevents collisions with other context values.
type contextKey string

const loggerKey = contextKey("logger")

// NewLogger builds the process-wide JSON logger.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the scoped logger, falling back to slog.Default when
// the context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
