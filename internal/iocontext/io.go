// Package iocontext injects I/O streams via context so commands can be
// exercised against buffers in tests.
package iocontext

import (
	"context"
	"io"
	"os"
)

// IO holds the output streams commands write to.
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
}

type contextKey struct{}

// DefaultIO returns the process streams.
func DefaultIO() IO {
	return IO{Out: os.Stdout, ErrOut: os.Stderr}
}

// WithIO attaches streams to the context.
func WithIO(ctx context.Context, streams IO) context.Context {
	return context.WithValue(ctx, contextKey{}, streams)
}

// GetIO retrieves the streams from the context, falling back to the
// process defaults.
func GetIO(ctx context.Context) IO {
	if streams, ok := ctx.Value(contextKey{}).(IO); ok {
		return streams
	}
	return DefaultIO()
}
