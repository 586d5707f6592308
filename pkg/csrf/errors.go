package csrf

import "errors"

var (
	// ErrTokenNotFound is returned by stores when the session has no token.
	ErrTokenNotFound = errors.New("csrf: token not found")

	// ErrMissingSession indicates an empty session identifier.
	ErrMissingSession = errors.New("csrf: session id is required")
)
