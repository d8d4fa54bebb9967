package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToBool converts various types to bool
// Handles different database driver and query string representations:
// - bool: direct conversion
// - integers and floats: 0 = false, non-zero = true
// - string: "true"/"1"/"yes" = true, anything else false
// - nil: false
func ToBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes", "on":
			return true
		default:
			return false
		}
	case []byte:
		return ToBool(string(val))
	default:
		return false
	}
}

// NormalizeValue converts driver specific representations into plain values.
// Text columns come back as []byte from some drivers (MySQL, PostgreSQL with
// certain types) and are returned as strings.
func NormalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// ToStringSlice converts list-like values into []string.
// Accepts []string, []any of strings (as decoded from JSON or YAML) and nil.
func ToStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		result := make([]string, len(val))
		copy(result, val)
		return result, nil
	case []any:
		result := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, expected string", i, item)
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}

// ToInt converts a query parameter style value to int, returning def when it cannot.
func ToInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
