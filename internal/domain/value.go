package domain

import (
	"strings"
	"unicode/utf8"
)

const maxNameLen = 200

// NewName validates and normalizes an entity name: trimmed, non-empty,
// at most 200 runes. Returns the normalized value rather than a wrapper
// type; validation happens at construction time only.
func NewName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", &ValidationError{Field: "name", Reason: "must be at most 200 characters"}
	}
	return name, nil
}

// NewPriority validates an instance priority: 0 (highest) through 9 (lowest).
func NewPriority(p int) (int, error) {
	if p < 0 || p > 9 {
		return 0, &ValidationError{Field: "priority", Reason: "must be between 0 and 9"}
	}
	return p, nil
}

// NewTemplatePriority validates a template priority: 0 high, 1 medium, 2 low.
func NewTemplatePriority(p int) (int, error) {
	if p < 0 || p > 2 {
		return 0, &ValidationError{Field: "priority", Reason: "must be 0 (high), 1 (medium) or 2 (low)"}
	}
	return p, nil
}
