// Package binder populates request structs from JSON bodies, form data, query
// strings and chi path parameters.
//
// Each binder handles one source and one struct tag:
//
//	type CreateProductRequest struct {
//	    ManufacturerID uuid.UUID `path:"id"`
//	    Name           string    `json:"name" form:"name"`
//	    Price          float64   `json:"price" form:"price"`
//	}
//
//	r.Post("/manufacturer/products", handler.Wrap(h,
//	    handler.WithBinders[CreateProductRequest](binder.JSON(), binder.Form()),
//	))
//
// Body binders return ErrBinderNotApplicable when the request content type is
// not theirs, so JSON and form binders can be stacked on one endpoint and the
// handler accepts either encoding.
//
// Fields implementing encoding.TextUnmarshaler (uuid.UUID, time.Time) are
// decoded through UnmarshalText.
package binder
