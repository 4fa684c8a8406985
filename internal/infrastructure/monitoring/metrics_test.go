package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"
)

func TestMetricsCollector_Recorder(t *testing.T) {
	m := NewMetricsCollector(zaptest.NewLogger(t))

	m.RemoteCall("collection", "success", 20*time.Millisecond)
	m.RemoteCall("collection", "error", time.Second)
	m.RemoteCall("detail", "not_found", time.Millisecond)
	m.RemoteFallback("collection")
	m.FavoriteSync("error")
	m.FavoriteSync("success")
	m.SetBreakerState(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteCallsTotal.WithLabelValues("collection", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteCallsTotal.WithLabelValues("collection", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteFallbacks.WithLabelValues("collection")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.favoriteSyncsTotal.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.remoteBreakerState))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorRateTotal.WithLabelValues("remote", "collection")))
}

func TestMetricsCollector_HTTPMiddlewareAndHandler(t *testing.T) {
	m := NewMetricsCollector(zaptest.NewLogger(t))
	r := chi.NewRouter()
	r.Use(m.HTTPMiddleware)
	r.Get("/api/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipes/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipes/def", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/recipes/{id}", "404")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.errorRateTotal.WithLabelValues("http", "client_error")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestMetricsCollector_IndependentRegistries(t *testing.T) {
	a := NewMetricsCollector(zaptest.NewLogger(t))
	b := NewMetricsCollector(zaptest.NewLogger(t))

	a.RemoteFallback("detail")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.remoteFallbacks.WithLabelValues("detail")))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestTracing(t *testing.T) {
	provider := NewTracerProvider(false, zaptest.NewLogger(t))
	ctx, span := provider.Tracer(TracerName).Start(context.Background(), "op")
	defer span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
	assert.Empty(t, SpanIDFromContext(ctx))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx = trace.ContextWithSpanContext(context.Background(), sc)
	assert.Equal(t, sc.TraceID().String(), TraceIDFromContext(ctx))
	assert.Equal(t, sc.SpanID().String(), SpanIDFromContext(ctx))
}
