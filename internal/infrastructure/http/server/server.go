// Package server provides the HTTP server for the recipe API
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/foodiee/recipes/internal/infrastructure/config"
	"github.com/foodiee/recipes/internal/infrastructure/http/handlers"
	"github.com/foodiee/recipes/internal/infrastructure/http/middleware"
	"github.com/foodiee/recipes/internal/infrastructure/monitoring"
	apperrors "github.com/foodiee/recipes/pkg/errors"
	"github.com/foodiee/recipes/pkg/healthcheck"
)

// Paths served next to the API
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	handler  http.Handler
	server   *http.Server
	recipes  *handlers.CollectionHandlers
	metrics  *monitoring.MetricsCollector
	health   *healthcheck.HealthCheck
	tracing  trace.TracerProvider
	listener net.Listener
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	recipes *handlers.CollectionHandlers,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
	tracing trace.TracerProvider,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger.Named("http-server"),
		recipes: recipes,
		metrics: metrics,
		health:  health,
		tracing: tracing,
	}

	s.router = s.setupRouter()
	s.handler = otelhttp.NewHandler(s.router, cfg.App.Name,
		otelhttp.WithTracerProvider(tracing),
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	mon := s.config.Monitoring

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, mon.HealthCheckPath, LivenessPath, ReadinessPath, mon.MetricsPath))
	r.Use(middleware.Recoverer(s.logger))
	if mon.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware)
	}
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(middleware.RateLimit(s.config.Server.RateLimitRPS, s.config.Server.RateLimitBurst))
	if s.config.Server.WriteTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	}
	r.Use(chimiddleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, apperrors.NewNotFoundError("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, apperrors.NewAppError(apperrors.CodeBadRequest, "Method not allowed", r.Method+" "+r.URL.Path))
	})

	// Probes
	r.Get(mon.HealthCheckPath, s.health.Handler())
	r.Get(LivenessPath, s.health.LivenessHandler())
	r.Get(ReadinessPath, s.health.ReadinessHandler())
	if mon.EnableMetrics {
		r.Method(http.MethodGet, mon.MetricsPath, s.metrics.Handler())
	}

	// API routes
	s.recipes.Routes(r)

	return r
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen binds the configured address. Start serves on it; calling Listen
// first lets startup fail fast on a taken port.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start starts the HTTP server and blocks until it stops. A graceful
// shutdown returns nil.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.logger.Info("Starting HTTP server",
		zap.String("address", s.Addr()),
		zap.String("environment", s.config.App.Environment),
	)

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
