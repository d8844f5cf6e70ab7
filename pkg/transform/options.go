package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Options carries one transformer spec's option mapping. Accessors are
// tolerant of wire types: numbers may arrive as json.Number (JSON), int or
// float64 (YAML), or numeric strings, and are coerced on read.
type Options map[string]interface{}

// Has reports whether key is present with a non-nil value.
func (o Options) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// String returns the option as a string, or fallback when absent.
func (o Options) String(key, fallback string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return DefaultString(v)
}

// Bool returns the option as a bool, or fallback when absent or not
// parseable.
func (o Options) Bool(key string, fallback bool) bool {
	v, ok := o[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	}
	return fallback
}

// Int returns the option as an int, or fallback when absent or not numeric.
func (o Options) Int(key string, fallback int) int {
	if n, ok := o.IntOK(key); ok {
		return n
	}
	return fallback
}

// IntOK returns the option as an int and whether it was present and numeric.
func (o Options) IntOK(key string) (int, bool) {
	f, ok := o.FloatOK(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Float returns the option as a float64, or fallback when absent or not
// numeric.
func (o Options) Float(key string, fallback float64) float64 {
	if f, ok := o.FloatOK(key); ok {
		return f
	}
	return fallback
}

// FloatOK returns the option as a float64 and whether it was present and
// numeric. Required numeric options use this form so that a legitimate zero
// is distinguishable from an absent option.
func (o Options) FloatOK(key string) (float64, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return 0, false
	}
	return ToFloat(v)
}

// StringMap returns the option as a string-to-string mapping, or nil when
// absent or not a mapping.
func (o Options) StringMap(key string) map[string]string {
	v, ok := o[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case map[string]interface{}:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = DefaultString(val)
		}
		return out
	default:
		return nil
	}
}

// Strings returns the option as a string slice, or nil when absent or not a
// sequence.
func (o Options) Strings(key string) []string {
	v, ok := o[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, val := range t {
			out = append(out, DefaultString(val))
		}
		return out
	default:
		return nil
	}
}

// ToFloat coerces a raw value to float64, accepting every numeric wire type
// plus numeric strings.
func ToFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// DefaultString renders a raw value the way an untransformed cell renders:
// strings pass through, numbers keep their source precision, everything else
// uses fmt's %v form.
func DefaultString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
