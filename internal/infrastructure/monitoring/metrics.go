// Package monitoring provides Prometheus metrics and tracing helpers
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/ports/outbound"
)

const namespace = "foodiee"

// MetricsCollector handles Prometheus metrics collection. Each collector
// owns its registry so several can coexist in one process.
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Collection metrics
	remoteCallsTotal   *prometheus.CounterVec
	remoteCallDuration *prometheus.HistogramVec
	remoteFallbacks    *prometheus.CounterVec
	favoriteSyncsTotal *prometheus.CounterVec
	remoteBreakerState prometheus.Gauge
	errorRateTotal     *prometheus.CounterVec
}

var _ outbound.Recorder = (*MetricsCollector)(nil)

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger,
		registry: registry,

		// HTTP metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		// Collection metrics
		remoteCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_calls_total",
				Help:      "Calls to the backend recipe API by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		remoteCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_call_duration_seconds",
				Help:      "Backend recipe API call duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		remoteFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "local_fallbacks_total",
				Help:      "Operations served by the local catalog after the remote path failed",
			},
			[]string{"operation"},
		),
		favoriteSyncsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "favorite_syncs_total",
				Help:      "Background favorite sync attempts by outcome",
			},
			[]string{"outcome"},
		),
		remoteBreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "remote_breaker_state",
				Help:      "Remote circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),
		errorRateTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errors_total",
				Help: "Total number of errors by service and type",
			},
			[]string{"service", "error_type"},
		),
	}
}

// HTTPMiddleware records request metrics labelled by chi route pattern
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		statusCode := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		m.httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(ww.BytesWritten()))

		if status >= 400 {
			errorType := "client_error"
			if status >= 500 {
				errorType = "server_error"
			}
			m.errorRateTotal.WithLabelValues("http", errorType).Inc()
		}
	})
}

// RemoteCall implements outbound.Recorder
func (m *MetricsCollector) RemoteCall(operation, outcome string, duration time.Duration) {
	m.remoteCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.remoteCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if outcome == "error" {
		m.errorRateTotal.WithLabelValues("remote", operation).Inc()
	}
}

// RemoteFallback implements outbound.Recorder
func (m *MetricsCollector) RemoteFallback(operation string) {
	m.remoteFallbacks.WithLabelValues(operation).Inc()
}

// FavoriteSync implements outbound.Recorder
func (m *MetricsCollector) FavoriteSync(outcome string) {
	m.favoriteSyncsTotal.WithLabelValues(outcome).Inc()
}

// SetBreakerState publishes the remote breaker state
func (m *MetricsCollector) SetBreakerState(state int) {
	m.remoteBreakerState.Set(float64(state))
	m.logger.Debug("Remote breaker state recorded", zap.Int("state", state))
}

// Registry exposes the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
