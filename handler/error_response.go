package handler

import "net/http"

type deferredError struct {
	err error
}

func (e deferredError) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the ErrorHandler configured on Wrap, so the failure is
// logged and mapped in one place.
func Error(err error) Response {
	return deferredError{err: err}
}
