package dataquality

import (
	"strconv"
	"strings"
)

// ParseEuroNumber parses a numeric cell that may use European formatting:
// "." as thousands separator, "," as decimal separator, and an optional "%"
// suffix. "1.234,56" parses to 1234.56 and "12,5%" to 0.125.
//
// The second return value is false when the cell cannot be interpreted as a
// number; callers treat that as a missing value, never as an error.
func ParseEuroNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	percent := strings.Contains(s, "%")
	if percent {
		s = strings.ReplaceAll(s, "%", "")
	}

	// Thousands separators go first, then the decimal comma becomes a point.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if percent {
		value /= 100
	}
	return value, true
}

// numericCell coerces a raw cell into a float64. Cells that already arrive as
// numbers (xlsx sources produce float64) pass through; strings go through the
// European-format parser.
func numericCell(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return ParseEuroNumber(n)
	default:
		return 0, false
	}
}
