package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"unicode/utf8"
)

// Record is one concrete name→value mapping. Values are JSON-representable:
// strings, numbers, booleans, nested maps/slices, or nil.
type Record map[string]any

// Clone returns a shallow copy, enough to mutate top-level values in tests and
// callers without touching the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// matchesType reports whether a runtime value is an acceptable representation
// of the given logical type. Integers that arrive as float64 after a JSON
// round trip still count as integers.
func matchesType(v any, t DataType) bool {
	switch t {
	case TypeString, TypeDate, TypeDateTime, TypeEmail, TypePhone, TypeURL, TypeUUID:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		return isIntegral(v)
	case TypeFloat:
		_, ok := toFloat(v)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeJSON:
		switch v.(type) {
		case map[string]any, []any, Record:
			return true
		}
		return false
	}
	return false
}

func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// valueLength is the rune length of the value's string form, matching how
// length constraints are declared against string-like types.
func valueLength(v any) int {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s)
	}
	return -1
}

// equalValue compares a record value with a declared choice. Numeric values
// compare by magnitude so 18 matches 18.0 after a serialization round trip.
func equalValue(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
