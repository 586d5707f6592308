package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/leadhub/pkg/binder"
	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/validator"
)

// ErrorMapping translates a domain error, matched with errors.Is, into an
// HTTPError.
type ErrorMapping struct {
	Target error
	HTTP   HTTPError
}

// MapError builds an ErrorMapping.
func MapError(target error, httpErr HTTPError) ErrorMapping {
	return ErrorMapping{Target: target, HTTP: httpErr}
}

// NewErrorHandler returns an ErrorHandler that logs every error (warn for
// 4xx, error for 5xx) and writes the JSON error envelope. Mappings are
// checked in order before HTTPError values found in the chain.
func NewErrorHandler(log *slog.Logger, mappings ...ErrorMapping) ErrorHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(ctx Context, err error) {
		status, detail := classifyError(err, mappings)
		r := ctx.Request()

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("http"),
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		resp := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Component("http"),
				logger.Error(renderErr),
			)
		}
	}
}

// ErrorResponse renders err through the same classification NewErrorHandler
// uses, for handlers that build their own error responses.
func ErrorResponse(err error, mappings ...ErrorMapping) Response {
	status, detail := classifyError(err, mappings)
	return &jsonResponse{status: status, body: JSONResponse{Error: detail}}
}

func classifyError(err error, mappings []ErrorMapping) (int, *ErrorDetail) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: ve.Map(),
		}
	}

	for _, m := range mappings {
		if m.Target != nil && errors.Is(err, m.Target) {
			return httpErrorDetail(m.HTTP, err)
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErrorDetail(httpErr, err)
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return httpErrorDetail(ErrUnsupportedMediaType, err)
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return httpErrorDetail(ErrBadRequest, err)
	}

	return httpErrorDetail(ErrInternalServerError, err)
}

// httpErrorDetail exposes the error text for client errors only.
func httpErrorDetail(httpErr HTTPError, err error) (int, *ErrorDetail) {
	msg := http.StatusText(httpErr.Code)
	if httpErr.Code < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: msg}
}
