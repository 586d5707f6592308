package handler_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/validator"
)

var errOutOfStock = errors.New("product out of stock")

func runErrorHandler(t *testing.T, h handler.ErrorHandler, err error) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inquiries", nil)
	h(handler.NewContext(rec, req), err)
	return rec
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "http error",
			err:        handler.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "wrapped http error",
			err:        fmt.Errorf("load product: %w", handler.ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "mapped domain error",
			err:        fmt.Errorf("reserve: %w", errOutOfStock),
			wantStatus: http.StatusConflict,
			wantCode:   "out_of_stock",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_server_error",
		},
	}

	h := handler.NewErrorHandler(nil,
		handler.MapError(errOutOfStock, handler.NewHTTPError(http.StatusConflict, "out_of_stock")),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := runErrorHandler(t, h, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestNewErrorHandler_ValidationErrors(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.Required("name", ""),
		validator.ValidEmail("email", "not-an-email"),
	)
	require.Error(t, err)

	rec := runErrorHandler(t, handler.NewErrorHandler(nil), fmt.Errorf("submit: %w", err))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Details, "name")
	assert.Contains(t, body.Error.Details, "email")
}

func TestNewErrorHandler_LogLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := handler.NewErrorHandler(log)

	runErrorHandler(t, h, handler.ErrBadRequest)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	runErrorHandler(t, h, errors.New("db down"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "db down")
}
