package usecase

import (
	"encoding/json"
	"math"
	"strconv"

	"movie-api/pkg/apperror"
)

// Patch values arrive as decoded JSON: json.Number, string, bool, nil,
// []any or map[string]any.

// coerceInt64 accepts a number, truncating any fraction, or an integer string.
func coerceInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// floatToInt64 truncates f, failing when the result would not fit.
func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// coerceInt is coerceInt64 limited to the 32-bit range of the integer columns.
func coerceInt(value any) (int, bool) {
	n, ok := coerceInt64(value)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// checkBodyID enforces that an id carried in a patch body names the path entity.
// A null id is ignored.
func checkBodyID(pathID int64, value any) error {
	if value == nil {
		return nil
	}

	bodyID, ok := coerceInt64(value)
	if !ok {
		return apperror.InvalidArgument("Invalid type for id; must be a number")
	}
	if bodyID != pathID {
		return apperror.InvalidArgument("Path id %d does not match body id %d", pathID, bodyID)
	}
	return nil
}

// referenceIDs reads a reference list such as [{"id": 1}, 2, "3"] into ids.
// singular names one element, e.g. "genre" for the genres list.
func referenceIDs(list []any, singular, plural string) ([]int64, error) {
	ids := make([]int64, 0, len(list))
	for _, elem := range list {
		var raw any
		switch v := elem.(type) {
		case map[string]any:
			id, ok := v["id"]
			if !ok || id == nil {
				return nil, apperror.InvalidArgument("%s id is required in %s list", capitalize(singular), plural)
			}
			raw = id
		case json.Number, float64, string:
			raw = v
		default:
			return nil, apperror.InvalidArgument("Invalid element type in %s list", plural)
		}

		id, ok := coerceInt64(raw)
		if !ok {
			return nil, apperror.InvalidArgument("Invalid %s id '%v' in %s list", singular, raw, plural)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
