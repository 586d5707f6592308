package config

import "errors"

var (
	// ErrParsingConfig wraps env parse failures, e.g. a missing required variable.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
