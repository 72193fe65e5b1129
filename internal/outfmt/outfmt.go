// Package outfmt selects between human-readable and machine-readable
// command output via context.
package outfmt

import (
	"context"
	"fmt"
)

// Mode is the output format of a command.
type Mode int

const (
	// Text is the default table/plain output.
	Text Mode = iota
	// JSON emits one indented JSON document.
	JSON
	// JSONL emits newline-delimited JSON, one record per line.
	JSONL
)

type contextKey struct{}

// Parse maps a --output flag value to a Mode.
func Parse(s string) (Mode, error) {
	switch s {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	case "jsonl", "ndjson":
		return JSONL, nil
	}
	return Text, fmt.Errorf("invalid output format: %q (use 'text', 'json', or 'jsonl')", s)
}

// WithMode attaches the output mode to the context.
func WithMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, contextKey{}, mode)
}

// ModeFromContext retrieves the output mode, defaulting to Text.
func ModeFromContext(ctx context.Context) Mode {
	if mode, ok := ctx.Value(contextKey{}).(Mode); ok {
		return mode
	}
	return Text
}

// IsJSON reports whether the context asks for machine-readable output.
func IsJSON(ctx context.Context) bool {
	mode := ModeFromContext(ctx)
	return mode == JSON || mode == JSONL
}
