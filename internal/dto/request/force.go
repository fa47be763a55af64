package request

import (
	"net/url"
	"strings"
)

// ParseForceFlag reads the force query parameter leniently. Absent is false,
// present without a value is true, otherwise the first token before any of
// "|,;" decides: true, 1, yes and y mean true.
func ParseForceFlag(query url.Values) bool {
	values, ok := query["force"]
	if !ok {
		return false
	}
	return parseLenientBool(strings.Join(values, ","))
}

func parseLenientBool(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}

	if i := strings.IndexAny(v, "|,;"); i >= 0 {
		v = v[:i]
	}

	switch strings.TrimSpace(v) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
