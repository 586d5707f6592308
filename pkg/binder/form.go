package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory bounds multipart form parsing.
const DefaultMaxMemory int64 = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies
// using `form` struct tags. Other content types yield ErrBinderNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrFailedToParseForm)
		default:
			return ErrBinderNotApplicable
		}
	}
}
