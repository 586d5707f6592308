// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leadhub"

// Inquiry results.
const (
	ResultAccepted    = "accepted"
	ResultRateLimited = "rate_limited"
	ResultInvalid     = "invalid"
	ResultFailed      = "failed"
)

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	inquiries   *prometheus.CounterVec
	rateLimit   *prometheus.CounterVec
	csrfFailure prometheus.Counter
	authEvents  *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// New registers every collector, plus Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inquiries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiries_total",
			Help:      "Inquiry submissions by outcome.",
		}, []string{"result"}),
		rateLimit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_decisions_total",
			Help:      "Rate limiter decisions.",
		}, []string{"decision"}),
		csrfFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csrf_failures_total",
			Help:      "Requests rejected by CSRF validation.",
		}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Authentication state changes by event.",
		}, []string{"event"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.inquiries,
		m.rateLimit,
		m.csrfFailure,
		m.authEvents,
		m.httpLatency,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InquirySubmitted counts one submission outcome.
func (m *Metrics) InquirySubmitted(result string) {
	m.inquiries.WithLabelValues(result).Inc()
}

// RateLimitDecision matches the ratelimiter observer signature.
func (m *Metrics) RateLimitDecision(_ string, allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.rateLimit.WithLabelValues(decision).Inc()
}

// CSRFFailure counts one rejected request.
func (m *Metrics) CSRFFailure() {
	m.csrfFailure.Inc()
}

// AuthEvent counts one sign-up, sign-in or sign-out.
func (m *Metrics) AuthEvent(event string) {
	m.authEvents.WithLabelValues(event).Inc()
}

// Middleware records request latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpLatency.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
