package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/internal/metrics"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.InquirySubmitted(metrics.ResultAccepted)
	m.InquirySubmitted(metrics.ResultAccepted)
	m.InquirySubmitted(metrics.ResultRateLimited)
	m.RateLimitDecision("a@example.com", true)
	m.RateLimitDecision("a@example.com", false)
	m.CSRFFailure()
	m.AuthEvent("signed_in")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `leadhub_inquiries_total{result="accepted"} 2`)
	assert.Contains(t, out, `leadhub_inquiries_total{result="rate_limited"} 1`)
	assert.Contains(t, out, `leadhub_ratelimit_decisions_total{decision="allowed"} 1`)
	assert.Contains(t, out, `leadhub_ratelimit_decisions_total{decision="denied"} 1`)
	assert.Contains(t, out, `leadhub_csrf_failures_total 1`)
	assert.Contains(t, out, `leadhub_auth_events_total{event="signed_in"} 1`)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/123", nil))

	n, err := testutil.GatherAndCount(m.Registry(), "leadhub_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
