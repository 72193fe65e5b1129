package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/iocontext"
	"github.com/canvaslms/canvas-cli/internal/outfmt"
)

func testContext(out *bytes.Buffer, mode outfmt.Mode) context.Context {
	ctx := context.Background()
	ctx = outfmt.WithMode(ctx, mode)
	return iocontext.WithIO(ctx, iocontext.IO{Out: out, ErrOut: out})
}

func TestPrintRecords_TextTable(t *testing.T) {
	flags = rootFlags{}
	var out bytes.Buffer
	ctx := testContext(&out, outfmt.Text)

	records := api.RecordSet{
		{"id": json.Number("1"), "name": "Ann"},
		{"id": json.Number("2"), "name": "Bo"},
	}
	if err := printRecords(ctx, records, "none"); err != nil {
		t.Fatalf("printRecords() error = %v", err)
	}
	for _, want := range []string{"id", "name", "Ann", "Bo"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestPrintRecords_EmptyMessage(t *testing.T) {
	flags = rootFlags{}
	var out bytes.Buffer
	ctx := testContext(&out, outfmt.Text)

	if err := printRecords(ctx, api.RecordSet{}, "No students found"); err != nil {
		t.Fatalf("printRecords() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "No students found" {
		t.Errorf("output = %q", out.String())
	}
}

func TestPrintRecords_JSON(t *testing.T) {
	flags = rootFlags{}
	var out bytes.Buffer
	ctx := testContext(&out, outfmt.JSON)

	records := api.RecordSet{{"id": json.Number("9007199254740993"), "name": "Ann"}}
	if err := printRecords(ctx, records, "none"); err != nil {
		t.Fatalf("printRecords() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(decoded) != 1 || decoded[0]["name"] != "Ann" {
		t.Errorf("decoded = %v", decoded)
	}
	// Big ids survive the JSON round trip textually.
	if !strings.Contains(out.String(), "9007199254740993") {
		t.Errorf("output mangled the large id: %s", out.String())
	}
}

func TestPrintRecords_JSONL(t *testing.T) {
	flags = rootFlags{}
	var out bytes.Buffer
	ctx := testContext(&out, outfmt.JSONL)

	records := api.RecordSet{
		{"id": json.Number("1")},
		{"id": json.Number("2")},
	}
	if err := printRecords(ctx, records, "none"); err != nil {
		t.Fatalf("printRecords() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, line := range lines {
		var v map[string]any
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			t.Errorf("line %q is not JSON: %v", line, err)
		}
	}
}

func TestPrintRecords_JQFilterAppliesInTextMode(t *testing.T) {
	flags = rootFlags{JQ: ".[].name"}
	defer func() { flags = rootFlags{} }()

	var out bytes.Buffer
	ctx := testContext(&out, outfmt.Text)

	records := api.RecordSet{{"name": "Ann"}, {"name": "Bo"}}
	if err := printRecords(ctx, records, "none"); err != nil {
		t.Fatalf("printRecords() error = %v", err)
	}
	// A --jq flag switches even text mode to JSON output.
	var decoded []any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(decoded) != 2 || decoded[0] != "Ann" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestRoundTrip_ErasesJSONNumber(t *testing.T) {
	in := api.RecordSet{{"id": json.Number("3"), "name": "x"}}
	got, err := roundTrip(in)
	if err != nil {
		t.Fatalf("roundTrip() error = %v", err)
	}
	items, ok := got.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("roundTrip() = %T %v", got, got)
	}
	record, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("item = %T", items[0])
	}
	if _, isNumber := record["id"].(json.Number); isNumber {
		t.Error("roundTrip should erase json.Number values")
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42", "file id")
	if err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
	if _, err := parseID("midterm", "file id"); err == nil {
		t.Error("parseID should reject non-numeric input")
	}
}
