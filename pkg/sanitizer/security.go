package sanitizer

// SanitizeInput defangs free-text input by removing every '<' and '>'
// character, every "javascript:" scheme prefix and every on<name>= event
// handler assignment (both case-insensitive), then trims leading and trailing
// whitespace.
//
// The removals run once each, in that order. The output is not re-scanned,
// so "javajavascript:script:" becomes "javascript:". This is a known
// limitation of the single-pass design; see SanitizeInputStrict.
func SanitizeInput(s string) string {
	s = tagDelimiterRegex.ReplaceAllString(s, "")
	s = javascriptSchemeRegex.ReplaceAllString(s, "")
	s = eventHandlerRegex.ReplaceAllString(s, "")
	return TrimSpace(s)
}

// SanitizeInputStrict applies SanitizeInput until the output stops changing.
// Every pass that changes the input makes it shorter, so the loop terminates.
func SanitizeInputStrict(s string) string {
	for {
		next := SanitizeInput(s)
		if next == s {
			return next
		}
		s = next
	}
}
