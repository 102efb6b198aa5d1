package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToString renders any parsed value as a trimmed string ("" for nil).
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// DecodeList accepts an already-parsed list or a JSON-encoded string.
// A string that fails to decode yields an empty list, not an error.
func DecodeList(v interface{}) []interface{} {
	switch val := v.(type) {
	case nil:
		return []interface{}{}
	case []interface{}:
		return val
	case string:
		var out []interface{}
		if err := json.Unmarshal([]byte(val), &out); err != nil || out == nil {
			return []interface{}{}
		}
		return out
	default:
		return []interface{}{}
	}
}

// DecodeIntList is DecodeList for integer sequences (wizard step numbers).
func DecodeIntList(v interface{}) []int {
	out := []int{}
	for _, item := range DecodeList(v) {
		if n, ok := toInt(item); ok {
			out = append(out, n)
		}
	}
	return out
}

// ToInt parses a number or numeric string, falling back to def.
func ToInt(v interface{}, def int) int {
	if n, ok := toInt(v); ok {
		return n
	}
	return def
}

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n), true
		}
		if f, err := val.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Truthy reports whether a raw cell value means "yes": true/yes in any case,
// or the exact string 1.
func Truthy(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "yes") || s == "1"
}
