package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bndr/gotabulate"
)

// Record is one decoded JSON object representing a single remote entity
// (a student, an assignment, a file) as a key-value map.
type Record map[string]any

// RecordSet is an ordered, field-uniform collection of records: every
// record carries the same field-name set, with fields the server omitted
// set to nil. This makes iteration safe regardless of source JSON
// irregularity.
type RecordSet []Record

// Shape tags the decoded variant of a response body.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeObject
	ShapeArray
)

// Body is the tagged-variant decoding of a JSON response body. Exactly one
// of Object/Array is populated, according to Shape.
type Body struct {
	Shape  Shape
	Object Record
	Array  []Record
}

// DecodeBody decodes a raw response body into its shape variant. A body
// that is neither a JSON object, an array of objects, nor empty fails with
// *ShapeError. Numeric leaves are decoded as json.Number so large ids
// survive intact.
func DecodeBody(data []byte) (Body, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Body{Shape: ShapeEmpty}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '{':
		var obj Record
		if err := dec.Decode(&obj); err != nil {
			return Body{}, &ShapeError{Detail: err.Error()}
		}
		return Body{Shape: ShapeObject, Object: obj}, nil
	case '[':
		var items []any
		if err := dec.Decode(&items); err != nil {
			return Body{}, &ShapeError{Detail: err.Error()}
		}
		records := make([]Record, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return Body{}, &ShapeError{Detail: fmt.Sprintf("array element of type %T", item)}
			}
			records = append(records, Record(obj))
		}
		return Body{Shape: ShapeArray, Array: records}, nil
	}
	return Body{}, &ShapeError{Detail: fmt.Sprintf("body starts with %q", trimmed[0])}
}

// Empty reports whether the body carried no data at all.
func (b Body) Empty() bool {
	return b.Shape == ShapeEmpty
}

// Normalize converts the body into a field-uniform RecordSet: an empty
// body yields an empty set, a single object a one-record set, and an
// array the union of all field names with absent fields padded to nil.
// Record order mirrors input order.
func (b Body) Normalize() RecordSet {
	switch b.Shape {
	case ShapeObject:
		return RecordSet{cloneRecord(b.Object)}
	case ShapeArray:
		return uniform(b.Array)
	}
	return RecordSet{}
}

// NormalizeField coerces a sub-field value that may be a single nested
// object, a list of objects, or absent into a RecordSet. Non-object
// values yield an empty set.
func NormalizeField(v any) RecordSet {
	switch field := v.(type) {
	case nil:
		return RecordSet{}
	case map[string]any:
		return RecordSet{cloneRecord(field)}
	case Record:
		return RecordSet{cloneRecord(field)}
	case []any:
		records := make([]Record, 0, len(field))
		for _, item := range field {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, Record(obj))
			}
		}
		return uniform(records)
	case RecordSet:
		return uniform(field)
	}
	return RecordSet{}
}

// Merge accumulates another RecordSet onto this one: the result carries
// the field-name union of both sides, records from the receiver first,
// missing fields padded to nil on both sides. Merging an empty set is the
// identity.
func (rs RecordSet) Merge(other RecordSet) RecordSet {
	if len(other) == 0 {
		return rs
	}
	if len(rs) == 0 {
		return other
	}
	fields := fieldUnion(append(append(RecordSet{}, rs...), other...))
	out := make(RecordSet, 0, len(rs)+len(other))
	for _, r := range rs {
		out = append(out, padded(r, fields))
	}
	for _, r := range other {
		out = append(out, padded(r, fields))
	}
	return out
}

// Fields returns the sorted field-name set of the record set.
func (rs RecordSet) Fields() []string {
	fields := fieldUnion(rs)
	sort.Strings(fields)
	return fields
}

// PrettyTable renders the record set as a text table for CLI display.
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "<empty>"
	}
	headers := rs.Fields()
	rows := make([][]any, 0, len(rs))
	for _, r := range rs {
		row := make([]any, 0, len(headers))
		for _, field := range headers {
			v := r[field]
			if v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%v", v))
		}
		rows = append(rows, row)
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return t.Render("grid")
}

// PrettyJson renders the record set as JSON, optionally indented.
func (rs RecordSet) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(rs, "", indent[0])
	} else {
		b, err = json.Marshal(rs)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// Int extracts an integer field, tolerating the json.Number decoding.
func (r Record) Int(field string) (int64, bool) {
	switch n := r[field].(type) {
	case json.Number:
		v, err := n.Int64()
		return v, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// Str extracts a string field; absent or non-string fields yield "".
func (r Record) Str(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

func cloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func fieldUnion(records RecordSet) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, r := range records {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				fields = append(fields, k)
			}
		}
	}
	return fields
}

func padded(r Record, fields []string) Record {
	out := make(Record, len(fields))
	for _, field := range fields {
		if v, ok := r[field]; ok {
			out[field] = v
		} else {
			out[field] = nil
		}
	}
	return out
}

func uniform(records []Record) RecordSet {
	fields := fieldUnion(records)
	out := make(RecordSet, 0, len(records))
	for _, r := range records {
		out = append(out, padded(r, fields))
	}
	return out
}
