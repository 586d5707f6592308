package manufacturer

import (
	"errors"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

// ErrNoManufacturer is returned for identities without a manufacturer profile.
var ErrNoManufacturer = errors.New("account has no manufacturer profile")

// ErrorMappings translates catalog and lead errors to HTTP responses.
var ErrorMappings = []handler.ErrorMapping{
	handler.MapError(ErrNoManufacturer, handler.ErrForbidden),
	handler.MapError(catalog.ErrProductNotFound, handler.ErrNotFound),
	handler.MapError(catalog.ErrNotApproved, handler.ErrForbidden),
	handler.MapError(catalog.ErrForbidden, handler.ErrForbidden),
	handler.MapError(lead.ErrLeadNotFound, handler.ErrNotFound),
	handler.MapError(lead.ErrForbidden, handler.ErrForbidden),
}
