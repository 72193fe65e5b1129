package api

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind describes the wire coercion applied to a parameter value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindTime
	KindPath
)

// Param declares one optional parameter of an API operation: the logical
// name callers use, the exact key the server expects, and the coercion kind.
// A wire key ending in "[]" marks the parameter as repeatable, per the
// Canvas array-parameter convention.
type Param struct {
	Name string
	Key  string
	Kind Kind
}

// Repeatable reports whether the parameter accepts multiple values.
func (p Param) Repeatable() bool {
	return strings.HasSuffix(p.Key, "[]")
}

// Pair is one encoded wire key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of encoded parameters. Order is prefix pairs,
// then declared parameters in declaration order, then suffix pairs.
// url.Values is not used for encoding because it sorts keys, which would
// destroy that ordering.
type Pairs []Pair

// Encode renders the pairs as a query string (without leading "?").
func (ps Pairs) Encode() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// timeWireFormat always carries an explicit numeric UTC offset; the remote
// service rejects offset-less timestamps.
const timeWireFormat = "2006-01-02T15:04:05-07:00"

// EncodeArgs converts caller-supplied values into an ordered Pairs list
// according to the declared parameter set.
//
// Values absent from the map, nil values, empty strings, and zero
// time.Time values (the "unset" sentinel) produce no encoded entry.
// Supplying more than one value for a non-repeatable parameter fails with
// *ArgumentError. prefix and suffix pairs are passed through verbatim,
// bypassing the declaration.
func EncodeArgs(decl []Param, values map[string]any, prefix, suffix Pairs) (Pairs, error) {
	out := make(Pairs, 0, len(prefix)+len(decl)+len(suffix))
	out = append(out, prefix...)

	for _, param := range decl {
		raw, ok := values[param.Name]
		if !ok || raw == nil {
			continue
		}

		items := listify(raw)
		if len(items) > 1 && !param.Repeatable() {
			return nil, &ArgumentError{
				Param:  param.Name,
				Reason: fmt.Sprintf("%d values supplied for non-repeatable parameter", len(items)),
			}
		}

		for _, item := range items {
			value, skip, err := coerce(param, item)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			out = append(out, Pair{Key: param.Key, Value: value})
		}
	}

	out = append(out, suffix...)
	return out, nil
}

// listify flattens a scalar or slice value into a slice of scalars.
func listify(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{v}
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

func coerce(param Param, v any) (value string, skip bool, err error) {
	switch param.Kind {
	case KindString:
		s, ok := asString(v)
		if !ok {
			return "", false, badValue(param, v)
		}
		return s, s == "", nil

	case KindInt:
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n), false, nil
		case int64:
			return strconv.FormatInt(n, 10), false, nil
		case float64:
			if n != math.Trunc(n) {
				return "", false, badValue(param, v)
			}
			return strconv.FormatInt(int64(n), 10), false, nil
		default:
			return "", false, badValue(param, v)
		}

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", false, badValue(param, v)
		}
		return strconv.FormatBool(b), false, nil

	case KindTime:
		t, ok := v.(time.Time)
		if !ok {
			return "", false, badValue(param, v)
		}
		if t.IsZero() {
			return "", true, nil
		}
		return t.Format(timeWireFormat), false, nil

	case KindPath:
		s, ok := asString(v)
		if !ok {
			return "", false, badValue(param, v)
		}
		s = strings.ReplaceAll(s, `\`, "/")
		return s, s == "", nil
	}
	return "", false, badValue(param, v)
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func badValue(param Param, v any) error {
	return &ArgumentError{
		Param:  param.Name,
		Reason: fmt.Sprintf("unsupported value of type %T", v),
	}
}
