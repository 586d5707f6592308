package sanitizer

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSpace reports whether r is whitespace in the sense of a browser's \s:
// unicode.IsSpace plus U+FEFF, minus U+0085.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// TrimSpace removes leading and trailing IsSpace runes.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return TrimSpace(s)
}

// NormalizeWhitespace collapses runs of whitespace into a single space and
// trims the result.
func NormalizeWhitespace(s string) string {
	return TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// MaxLength truncates s to at most n runes. Non-positive n yields "".
func MaxLength(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// StripHTML removes markup tags and unescapes HTML entities, e.g. for
// product descriptions pasted from a rich text editor.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(TrimSpace(s))
}
