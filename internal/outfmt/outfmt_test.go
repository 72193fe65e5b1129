package outfmt

import (
	"context"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: Text},
		{in: "text", want: Text},
		{in: "json", want: JSON},
		{in: "jsonl", want: JSONL},
		{in: "ndjson", want: JSONL},
		{in: "yaml", wantErr: true},
		{in: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeRoundTrip(t *testing.T) {
	ctx := context.Background()

	if ModeFromContext(ctx) != Text {
		t.Error("default mode should be Text")
	}
	if IsJSON(ctx) {
		t.Error("IsJSON should be false by default")
	}

	ctx = WithMode(ctx, JSONL)
	if ModeFromContext(ctx) != JSONL {
		t.Error("mode did not round-trip")
	}
	if !IsJSON(ctx) {
		t.Error("IsJSON should be true for JSONL")
	}
}
