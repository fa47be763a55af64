package utils

import (
	"strconv"
)

// ParseInt64 parses a base-10 identifier.
func ParseInt64(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

// ParseInt parses a base-10 int, used for query parameters like year or page.
func ParseInt(value string) (int, error) {
	return strconv.Atoi(value)
}
