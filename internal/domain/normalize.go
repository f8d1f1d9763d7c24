// File: internal/domain/normalize.go
package domain

import (
	"strconv"
	"strings"
)

// EmptyToNil maps blank or whitespace-only strings to absent.
func EmptyToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ToInt64OrNil coerces a string to an integer, or absent when blank/invalid.
// Malformed numeric input is never an error here.
func ToInt64OrNil(s string) *int64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// CollapseWhitespace flattens linebreaks and runs of spaces into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
