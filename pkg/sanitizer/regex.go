package sanitizer

import "regexp"

// spaceClass is the whitespace set browsers use for \s and String.trim:
// ASCII whitespace including \v, the Unicode space separators, the line and
// paragraph separators and the byte order mark. U+0085 is not included.
const spaceClass = `[\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// Pre-compiled regular expressions for performance
var (
	// Tag delimiters are removed one character at a time.
	tagDelimiterRegex = regexp.MustCompile(`[<>]`)

	javascriptSchemeRegex = regexp.MustCompile(`(?i)javascript:`)

	// onclick=, onerror  =, ONLOAD= ...
	eventHandlerRegex = regexp.MustCompile(`(?i)on\w+` + spaceClass + `*=`)

	whitespaceRegex = regexp.MustCompile(spaceClass + `+`)

	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)
