package validator

import "fmt"

func MinNum[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: newError(field, fmt.Sprintf("must be at least %v", min), "validation.min", map[string]any{"min": min}),
	}
}

func MaxNum[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: newError(field, fmt.Sprintf("must be at most %v", max), "validation.max", map[string]any{"max": max}),
	}
}
