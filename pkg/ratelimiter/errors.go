package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates a negative limit or window.
	ErrInvalidConfig = errors.New("ratelimiter: invalid configuration")

	// ErrStoreRequired indicates New was called without a store.
	ErrStoreRequired = errors.New("ratelimiter: store is required")

	// ErrUnexpectedReply indicates the Redis script returned an unexpected shape.
	ErrUnexpectedReply = errors.New("ratelimiter: unexpected store reply")
)
