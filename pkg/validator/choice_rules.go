package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// OneOf validates that value is one of the allowed values.
func OneOf[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: newError(field, fmt.Sprintf("must be one of: %s", joinValues(allowed)), "validation.one_of", map[string]any{"allowed": allowed}),
	}
}

// ValidUUID validates that value parses as a UUID.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return uuid.Validate(value) == nil
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}

// RequiredUUID validates that id is not the zero UUID.
func RequiredUUID(field string, id uuid.UUID) Rule {
	return Rule{
		Check: func() bool {
			return id != uuid.Nil
		},
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
