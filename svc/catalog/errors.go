package catalog

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrManufacturerNotFound = errors.New("manufacturer not found")
	ErrNotApproved          = errors.New("manufacturer account is not approved")
	ErrForbidden            = errors.New("product belongs to another manufacturer")
)
