// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A handler receives a bound request struct and returns a Response:
//
//	type submitRequest struct {
//		Email   string `json:"email" form:"email"`
//		Message string `json:"message" form:"message"`
//	}
//
//	func submit(ctx handler.Context, req submitRequest) handler.Response {
//		lead, err := leads.Submit(ctx, toInquiry(req))
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(lead, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/inquiries", handler.Wrap(submit,
//		handler.WithBinders[submitRequest](binder.JSON(), binder.Form()),
//		handler.WithErrorHandler[submitRequest](errHandler),
//	))
//
// Binding errors and Render failures go to the ErrorHandler. NewErrorHandler
// logs them and writes the JSON error envelope, translating HTTPError values,
// validator.ValidationErrors (422 with per-field details) and any registered
// domain errors.
package handler
