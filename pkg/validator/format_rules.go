package validator

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
)

// MaxEmailLength is the RFC 5321 upper bound for a forward-path.
const MaxEmailLength = 320

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Optional '+', no leading zero, up to 16 digits in total.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// IsEmail reports whether s looks like an email address and is no longer
// than MaxEmailLength bytes. s is matched as is: no trimming, no case folding.
func IsEmail(s string) bool {
	return len(s) <= MaxEmailLength && emailRegex.MatchString(s)
}

// IsPhone reports whether s is an international phone number once spaces,
// hyphens and parentheses are removed.
func IsPhone(s string) bool {
	return phoneRegex.MatchString(stripPhoneSeparators(s))
}

func stripPhoneSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if sanitizer.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, s)
}

// ValidEmail validates value with IsEmail.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// ValidPhone validates value with IsPhone.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsPhone(value)
		},
		Error: newError(field, "must be a valid phone number", "validation.phone", nil),
	}
}

// OptionalPhone passes for an empty value and validates anything else with IsPhone.
func OptionalPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || IsPhone(value)
		},
		Error: newError(field, "must be a valid phone number", "validation.phone", nil),
	}
}
