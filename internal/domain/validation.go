package domain

import "strings"

// ValidationErrors maps field names to user-facing messages. It is returned
// by the entity Validate methods and surfaced as-is to the presentation
// layer.
type ValidationErrors map[string]string

func (v ValidationErrors) IsValid() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation passed"
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
