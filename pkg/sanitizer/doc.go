// Package sanitizer cleans untrusted free-text input before it is validated,
// stored or rendered.
//
// The central helper is SanitizeInput which removes HTML tag delimiters,
// javascript: URIs and inline event handler assignments, then trims the
// result:
//
//	name := sanitizer.SanitizeInput(form.Name)
//
// SanitizeInput performs exactly one pass per pattern. Input engineered so
// that a forbidden pattern reappears only after an earlier removal is not
// re-scanned. SanitizeInputStrict repeats the pass until the output is stable
// for callers that need the stricter guarantee.
//
// Helpers can be chained with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.SanitizeInput,
//	    sanitizer.NormalizeWhitespace,
//	)
//	title := clean("  Steel <b>pipes</b>\n 40mm ") // "Steel bpipes/b 40mm"
//
// None of the helpers returns an error and the package holds no state, so
// every function is safe for concurrent use.
package sanitizer
