package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return sanitizer.TrimSpace(value) != ""
		},
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: newError(field, fmt.Sprintf("must be at least %d characters long", min), "validation.min_length", map[string]any{"min": min}),
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max), "validation.max_length", map[string]any{"max": max}),
	}
}
