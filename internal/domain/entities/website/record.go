package website

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is the flat configuration record as stored: string keys following
// the website_<section>_<property> convention mapped to JSON values. No key is
// ever assumed present; every accessor takes an explicit default.
type Record map[string]any

// Clone returns a shallow copy safe to merge into.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays patch onto a copy of r. A nil value in patch deletes the key.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// String returns a non-empty string value or def. Empty strings fall back.
func (r Record) String(key, def string) string {
	switch v := r[key].(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return def
}

// OptionalString returns the raw string or "" when absent.
func (r Record) OptionalString(key string) string {
	return r.String(key, "")
}

// Bool returns a boolean value or def when absent or of the wrong type.
// An explicit false is kept.
func (r Record) Bool(key string, def bool) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	case float64:
		return v != 0
	}
	return def
}

// Float returns a numeric value or def. An explicit zero is kept.
func (r Record) Float(key string, def float64) float64 {
	switch v := r[key].(type) {
	case float64:
		if !math.IsNaN(v) {
			return v
		}
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// Int returns an integral value or def.
func (r Record) Int(key string, def int) int {
	f := r.Float(key, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	return int(f)
}

// Decode unmarshals the value under key into out through JSON. It reports
// false when the key is absent or the value does not fit out's shape.
func (r Record) Decode(key string, out any) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// List returns the raw elements under key when it holds an array.
func (r Record) List(key string) []any {
	switch v := r[key].(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	}
	return nil
}

// StyleKey builds the storage key of a section-scoped property.
func StyleKey(section SectionKey, property string) string {
	return "website_" + string(section) + "_" + property
}

// ShowKey builds the storage key of a section toggle.
func ShowKey(section SectionKey) string {
	return "website_show_" + string(section)
}
