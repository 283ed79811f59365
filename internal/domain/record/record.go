// Package record models the loosely-typed rows produced by the spreadsheet
// conversion pipeline and provides ordered-synonym field resolution over
// them. Source datasets were exported at different times with different
// column headers, so the same semantic attribute may live under any of
// several keys; callers pass the candidate keys in preference order and the
// first present, non-empty value wins. Absence is a normal outcome, never
// an error.
package record

import (
	"strconv"
	"strings"
)

// Record is one raw row as decoded from a dataset JSON array.
type Record map[string]any

// Resolve returns the value of the first key present on r with a non-nil,
// non-empty-string value, and whether any key matched.
func (r Record) Resolve(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String resolves keys to a string, coercing JSON numbers and booleans.
// Returns def when no key resolves.
func (r Record) String(def string, keys ...string) string {
	v, ok := r.Resolve(keys...)
	if !ok {
		return def
	}
	if s := stringify(v); s != "" {
		return s
	}
	return def
}

// Int resolves keys to an integer. JSON numbers arrive as float64; numeric
// strings are parsed after trimming.
func (r Record) Int(keys ...string) (int, bool) {
	v, ok := r.Resolve(keys...)
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// Float resolves keys to a float64.
func (r Record) Float(keys ...string) (float64, bool) {
	v, ok := r.Resolve(keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Year resolves keys to a four-digit year. Numeric values are used
// directly; string values contribute their first four characters, which
// covers ISO dates ("1982-05-01") and plain year strings alike.
func (r Record) Year(keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if y, ok := YearOf(v); ok {
			return y, true
		}
	}
	return 0, false
}

// Map resolves keys to a nested object.
func (r Record) Map(keys ...string) (Record, bool) {
	v, ok := r.Resolve(keys...)
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	}
	return nil, false
}

// Slice resolves keys to a nested array.
func (r Record) Slice(keys ...string) ([]any, bool) {
	v, ok := r.Resolve(keys...)
	if !ok {
		return nil, false
	}
	s, isSlice := v.([]any)
	return s, isSlice
}

// YearOf extracts a year from a single raw value: an int-like number in a
// plausible year range, or the leading four digits of a string.
func YearOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return checkYear(int(t))
	case int:
		return checkYear(t)
	case string:
		s := strings.TrimSpace(t)
		if len(s) < 4 {
			return 0, false
		}
		y, err := strconv.Atoi(s[:4])
		if err != nil {
			return 0, false
		}
		return checkYear(y)
	}
	return 0, false
}

func checkYear(y int) (int, bool) {
	// Anything outside this window is a stray numeric column, not a season.
	if y < 1000 || y > 9999 {
		return 0, false
	}
	return y, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
