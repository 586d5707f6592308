package admin

import (
	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/svc/admin"
)

// ErrorMappings translates admin errors to HTTP responses.
var ErrorMappings = []handler.ErrorMapping{
	handler.MapError(admin.ErrForbidden, handler.ErrForbidden),
	handler.MapError(admin.ErrManufacturerNotFound, handler.ErrNotFound),
}
