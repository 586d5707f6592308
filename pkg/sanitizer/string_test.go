package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "steel pipes 40mm", sanitizer.NormalizeWhitespace("  steel \t pipes\n\n40mm "))
	assert.Equal(t, "", sanitizer.NormalizeWhitespace("   "))
	assert.Equal(t, "steel pipes", sanitizer.NormalizeWhitespace("\ufeffsteel\u00a0\u00a0pipes\v"))
}

func TestIsSpace(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u1680', '\u2000', '\u200a', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff'} {
		assert.True(t, sanitizer.IsSpace(r), "rune %U", r)
	}
	for _, r := range []rune{'a', '-', '\u0085', '\u200b', 0} {
		assert.False(t, sanitizer.IsSpace(r), "rune %U", r)
	}
	assert.Equal(t, "x", sanitizer.TrimSpace("\ufeff\u00a0x\u3000"))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than limit", "abc", 5, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"truncates", "abcdef", 3, "abc"},
		{"counts runes not bytes", "ünïcödé", 3, "ünï"},
		{"zero limit", "abc", 0, ""},
		{"negative limit", "abc", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.MaxLength(tt.input, tt.n))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.SanitizeInput, sanitizer.NormalizeWhitespace)
	assert.Equal(t, "Steel bpipes/b 40mm", clean("  Steel <b>pipes</b>\n 40mm "))

	upper := sanitizer.Apply(" x ", sanitizer.Trim)
	assert.Equal(t, "x", upper)
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Steel bolts & nuts", sanitizer.StripHTML("<p>Steel <b>bolts</b> &amp; nuts</p>"))
	assert.Equal(t, "plain", sanitizer.StripHTML("plain"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "buyer@example.com", sanitizer.NormalizeEmail("  Buyer@Example.COM \n"))
	assert.Equal(t, "", sanitizer.NormalizeEmail("   "))
}
