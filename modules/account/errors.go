package account

import (
	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

// ErrorMappings translates auth errors to HTTP responses.
var ErrorMappings = []handler.ErrorMapping{
	handler.MapError(auth.ErrEmailAlreadyExists, handler.ErrConflict),
	handler.MapError(auth.ErrInvalidCredentials, handler.ErrUnauthorized),
	handler.MapError(auth.ErrUnauthorized, handler.ErrUnauthorized),
	handler.MapError(auth.ErrUserNotFound, handler.ErrUnauthorized),
}
