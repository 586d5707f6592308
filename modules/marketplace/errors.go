package marketplace

import (
	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

// ErrorMappings translates catalog and lead errors to HTTP responses.
var ErrorMappings = []handler.ErrorMapping{
	handler.MapError(catalog.ErrProductNotFound, handler.ErrNotFound),
	handler.MapError(catalog.ErrManufacturerNotFound, handler.ErrNotFound),
	handler.MapError(lead.ErrRateLimited, handler.ErrTooManyRequests),
}
