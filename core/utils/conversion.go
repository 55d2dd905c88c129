package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToBool reads a flag-like query value: "1", "true", "yes" and "on" are true,
// case-insensitively. Anything else is false.
func ToBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// ToLimit parses a positive page limit. An empty value yields def and values above
// max are clamped.
func ToLimit(val string, def, max int) (int, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", val)
	}
	return min(n, max), nil
}

// Deref returns the pointed-to value, or the zero value for nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
