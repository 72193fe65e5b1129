package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantShape Shape
		wantErr   bool
	}{
		{name: "object", data: `{"id": 1}`, wantShape: ShapeObject},
		{name: "array", data: `[{"id": 1}, {"id": 2}]`, wantShape: ShapeArray},
		{name: "empty array", data: `[]`, wantShape: ShapeArray},
		{name: "empty body", data: ``, wantShape: ShapeEmpty},
		{name: "whitespace body", data: "  \n ", wantShape: ShapeEmpty},
		{name: "null body", data: `null`, wantShape: ShapeEmpty},
		{name: "bare scalar", data: `42`, wantErr: true},
		{name: "bare string", data: `"ok"`, wantErr: true},
		{name: "array of scalars", data: `[1, 2]`, wantErr: true},
		{name: "truncated object", data: `{"id":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := DecodeBody([]byte(tt.data))
			if tt.wantErr {
				var shapeErr *ShapeError
				if !errors.As(err, &shapeErr) {
					t.Fatalf("expected *ShapeError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBody() error = %v", err)
			}
			if body.Shape != tt.wantShape {
				t.Errorf("Shape = %d, want %d", body.Shape, tt.wantShape)
			}
		})
	}
}

func TestDecodeBody_LargeIDsSurvive(t *testing.T) {
	body, err := DecodeBody([]byte(`{"id": 9007199254740993}`))
	if err != nil {
		t.Fatalf("DecodeBody() error = %v", err)
	}
	id, ok := body.Object.Int("id")
	if !ok {
		t.Fatal("Int() reported missing id")
	}
	// 2^53+1 is not representable as float64; json.Number keeps it exact.
	if id != 9007199254740993 {
		t.Errorf("id = %d, want 9007199254740993", id)
	}
}

func TestNormalize_HeterogeneousArray(t *testing.T) {
	body, err := DecodeBody([]byte(`[
		{"id": 1, "name": "alice"},
		{"id": 2, "extra": "x"}
	]`))
	if err != nil {
		t.Fatalf("DecodeBody() error = %v", err)
	}

	records := body.Normalize()
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	wantFields := []string{"extra", "id", "name"}
	if got := records.Fields(); !reflect.DeepEqual(got, wantFields) {
		t.Errorf("Fields() = %v, want %v", got, wantFields)
	}

	// Padded fields are present and nil.
	if v, ok := records[0]["extra"]; !ok || v != nil {
		t.Errorf("records[0][extra] = %v (present %v), want nil present", v, ok)
	}
	if v, ok := records[1]["name"]; !ok || v != nil {
		t.Errorf("records[1][name] = %v (present %v), want nil present", v, ok)
	}
	if records[1].Str("extra") != "x" {
		t.Errorf("records[1][extra] = %q, want %q", records[1].Str("extra"), "x")
	}
}

func TestNormalize_SingleObjectAndEmpty(t *testing.T) {
	obj, _ := DecodeBody([]byte(`{"id": 7, "name": "quiz"}`))
	records := obj.Normalize()
	if len(records) != 1 || records[0].Str("name") != "quiz" {
		t.Errorf("object normalize = %v", records)
	}

	empty, _ := DecodeBody(nil)
	records = empty.Normalize()
	if records == nil {
		t.Error("empty body should normalize to a non-nil empty set")
	}
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantLen int
	}{
		{name: "nil", value: nil, wantLen: 0},
		{name: "single object", value: map[string]any{"id": 1}, wantLen: 1},
		{name: "list of objects", value: []any{map[string]any{"id": 1}, map[string]any{"id": 2}}, wantLen: 2},
		{name: "scalar yields empty", value: "nope", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeField(tt.value)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestRecordSetMerge(t *testing.T) {
	a := RecordSet{{"id": json.Number("1"), "name": "a"}}
	b := RecordSet{{"id": json.Number("2"), "score": json.Number("10")}}

	merged := a.Merge(b)
	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2", len(merged))
	}

	wantFields := []string{"id", "name", "score"}
	if got := merged.Fields(); !reflect.DeepEqual(got, wantFields) {
		t.Errorf("Fields() = %v, want %v", got, wantFields)
	}
	if v, ok := merged[0]["score"]; !ok || v != nil {
		t.Error("merged[0][score] should be padded to nil")
	}
	if v, ok := merged[1]["name"]; !ok || v != nil {
		t.Error("merged[1][name] should be padded to nil")
	}

	// Order is receiver first.
	if id, _ := merged[0].Int("id"); id != 1 {
		t.Errorf("merged[0][id] = %d, want 1", id)
	}
}

func TestRecordSetMerge_EmptyIsIdentity(t *testing.T) {
	a := RecordSet{{"id": json.Number("1")}}

	if got := a.Merge(RecordSet{}); !reflect.DeepEqual(got, a) {
		t.Errorf("Merge(empty) = %v, want %v", got, a)
	}
	if got := (RecordSet{}).Merge(a); !reflect.DeepEqual(got, a) {
		t.Errorf("empty.Merge(a) = %v, want %v", got, a)
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"id":    json.Number("42"),
		"count": float64(3),
		"name":  "essay",
		"flag":  true,
	}

	if id, ok := r.Int("id"); !ok || id != 42 {
		t.Errorf("Int(id) = %d, %v", id, ok)
	}
	if n, ok := r.Int("count"); !ok || n != 3 {
		t.Errorf("Int(count) = %d, %v", n, ok)
	}
	if _, ok := r.Int("name"); ok {
		t.Error("Int(name) should report not ok")
	}
	if _, ok := r.Int("missing"); ok {
		t.Error("Int(missing) should report not ok")
	}
	if r.Str("name") != "essay" {
		t.Errorf("Str(name) = %q", r.Str("name"))
	}
	if r.Str("flag") != "" {
		t.Errorf("Str(flag) = %q, want empty", r.Str("flag"))
	}
}

func TestPrettyTable_Empty(t *testing.T) {
	if got := (RecordSet{}).PrettyTable(); got != "<empty>" {
		t.Errorf("PrettyTable() = %q, want %q", got, "<empty>")
	}
}
