package application

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateRank checks that a rank is not negative
func ValidateRank(fieldName string, rank int) error {
	if rank < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not be negative, got: %d", formatFieldName(fieldName), rank),
		}
	}
	return nil
}

// ParseRank parses a rank given as text, e.g. a form value.
// An empty value yields def.
func ParseRank(fieldName, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be an integer, got: %q", formatFieldName(fieldName), raw),
		}
	}
	return n, ValidateRank(fieldName, n)
}

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "startorder" -> "start order")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"startorder":  "start order",
		"endorder":    "end order",
		"selectedIDs": "selection",
		"pageSize":    "page size",
		"currentPage": "current page",
		"label":       "label",
		"id":          "ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}
