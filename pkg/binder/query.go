package binder

import "net/http"

// Query binds URL query parameters using `query` struct tags. Repeated and
// comma-separated values fill slice fields.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
