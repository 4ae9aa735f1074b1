// Package coerce converts loosely typed wire values into numbers the rest of
// the application can do arithmetic on without checking for NaN or Infinity.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float converts an arbitrary value to a finite float64. Missing, malformed,
// NaN and infinite inputs all collapse to 0. It never panics.
func Float(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		return parse(n.String())
	case string:
		return parse(n)
	default:
		return 0
	}
}

// Int converts via Float and truncates toward zero.
func Int(v any) int {
	return int(Float(v))
}

func parse(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
