package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// TracerName is the instrumentation scope for spans started by this module
const TracerName = "github.com/foodiee/recipes"

// NewTracerProvider returns the globally registered provider when tracing is
// enabled and a no-op provider otherwise. Exporters are installed by the
// hosting process through otel.SetTracerProvider.
func NewTracerProvider(enabled bool, logger *zap.Logger) trace.TracerProvider {
	if !enabled {
		logger.Info("Tracing is disabled")
		return noop.NewTracerProvider()
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Info("Tracing enabled")
	return otel.GetTracerProvider()
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// SpanIDFromContext extracts span ID from context for logging correlation
func SpanIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasSpanID() {
		return ""
	}
	return sc.SpanID().String()
}
