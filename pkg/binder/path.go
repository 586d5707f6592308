package binder

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// Path binds chi URL parameters using `path` struct tags. Only fields that
// carry a path tag are considered.
func Path() func(r *http.Request, v any) error {
	return PathWith(chi.URLParam)
}

// PathWith binds path parameters read through extractor.
func PathWith(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := make(map[string][]string)
		rt := reflect.TypeOf(v)
		for rt != nil && rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		if rt != nil && rt.Kind() == reflect.Struct {
			for i := 0; i < rt.NumField(); i++ {
				name, ok := rt.Field(i).Tag.Lookup("path")
				if !ok || name == "-" || name == "" {
					continue
				}
				if val := extractor(r, name); val != "" {
					values[name] = []string{val}
				}
			}
		}
		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
