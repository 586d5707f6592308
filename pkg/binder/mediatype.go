package binder

import (
	"mime"
	"net/http"
	"strings"
)

// mediaType returns the lowercased media type of the request body without
// parameters, or an empty string when the header is missing or malformed.
func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}
