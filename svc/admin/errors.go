package admin

import "errors"

var (
	ErrForbidden            = errors.New("admin role required")
	ErrManufacturerNotFound = errors.New("manufacturer account not found")
)
