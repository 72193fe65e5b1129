// Package debug carries the request-logging switch through context and
// configures slog accordingly.
package debug

import (
	"context"
	"log/slog"
	"os"
)

type contextKey struct{}

// WithDebug returns a context with request logging enabled or disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, contextKey{}, enabled)
}

// IsEnabled reports whether request logging is enabled in the context.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(contextKey{}).(bool); ok {
		return v
	}
	return false
}

// SetupLogger points slog at stderr with a level matching the debug mode.
func SetupLogger(debugEnabled bool) {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
