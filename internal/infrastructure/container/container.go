// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/application/collection"
	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/config"
	"github.com/foodiee/recipes/internal/infrastructure/http/client"
	"github.com/foodiee/recipes/internal/infrastructure/http/handlers"
	"github.com/foodiee/recipes/internal/infrastructure/http/server"
	"github.com/foodiee/recipes/internal/infrastructure/monitoring"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/catalog"
	"github.com/foodiee/recipes/internal/ports/inbound"
	"github.com/foodiee/recipes/internal/ports/outbound"
	"github.com/foodiee/recipes/pkg/healthcheck"
	"github.com/foodiee/recipes/pkg/logger"
)

// storageOpenTimeout bounds connecting and seeding the storage driver
const storageOpenTimeout = 30 * time.Second

// CoreModule provides everything needed to answer collection queries
var CoreModule = fx.Options(
	LoggerModule,
	MonitoringModule,
	StorageModule,
	RemoteModule,
	ServiceModule,
)

// ServerModule provides the HTTP API on top of CoreModule
var ServerModule = fx.Options(
	CoreModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration loaded from path
func ConfigModule(path string) fx.Option {
	return fx.Provide(func() (*config.Config, error) {
		return config.Load(path)
	})
}

// LoggerModule provides logging
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			Stderr:      cfg.App.LogStderr,
		})
	}),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
	}),
)

// MonitoringModule provides metrics, tracing and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(m *monitoring.MetricsCollector) outbound.Recorder { return m },
	func(cfg *config.Config, log *zap.Logger) trace.TracerProvider {
		return monitoring.NewTracerProvider(cfg.Monitoring.EnableTracing, log)
	},
	func(cfg *config.Config, log *zap.Logger) *healthcheck.HealthCheck {
		return healthcheck.New(cfg.App.Version, log.Named("health"))
	},
)

// StorageModule provides the catalog and favorite store
var StorageModule = fx.Provide(
	func(cfg *config.Config) ([]recipe.Detail, error) {
		return catalog.Load(cfg.Catalog.SeedFile)
	},
	NewStorage,
	func(s *Storage) outbound.CatalogRepository { return s.Catalog },
	func(s *Storage) outbound.KeyValueStore { return s.Store },
)

// NewStorage opens the configured storage and closes it on stop
func NewStorage(
	lc fx.Lifecycle,
	cfg *config.Config,
	details []recipe.Detail,
	health *healthcheck.HealthCheck,
	log *zap.Logger,
) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageOpenTimeout)
	defer cancel()

	s, err := OpenStorage(ctx, cfg, details, log)
	if err != nil {
		return nil, err
	}
	health.Register("storage", s.Checker)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

// RemoteModule provides the backend API client and the use-mocks switch
var RemoteModule = fx.Provide(
	NewMockSwitch,
	func(m *config.MockSwitch) outbound.ModeSource { return m },
	NewRecipeClient,
	NewRemoteStrategy,
)

// NewMockSwitch reads the override file and keeps watching it
func NewMockSwitch(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *config.MockSwitch {
	m := config.NewMockSwitch(cfg.Remote, log)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// without a watcher the override is still read at startup
			if err := m.Watch(); err != nil {
				log.Warn("Mock override file will not be watched", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return m.Close()
		},
	})
	return m
}

// NewRecipeClient builds the backend client, or returns nil when no
// backend is configured. Breaker transitions feed metrics and health.
func NewRecipeClient(
	cfg *config.Config,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
	log *zap.Logger,
) *client.RecipeClient {
	if !cfg.Remote.Enabled() {
		log.Info("No remote API configured, serving the local catalog")
		return nil
	}

	c := client.NewRecipeClient(client.Options{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout,
		RPS:     cfg.Remote.RateLimit.RPS,
		Burst:   cfg.Remote.RateLimit.Burst,
		Breaker: client.BreakerConfig{
			FailureThreshold: cfg.Remote.Breaker.FailureThreshold,
			SuccessThreshold: cfg.Remote.Breaker.SuccessThreshold,
			Cooldown:         cfg.Remote.Breaker.Cooldown,
			OnStateChange: func(from, to client.BreakerState) {
				metrics.SetBreakerState(int(to))
				log.Warn("Remote circuit breaker changed state",
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		},
	}, log)

	health.Register("remote", BreakerChecker(c.Breaker()))
	return c
}

// BreakerChecker reports an open or probing breaker as degraded since
// reads still succeed from the local catalog.
func BreakerChecker(b *client.Breaker) healthcheck.Checker {
	return healthcheck.NewCustomChecker("remote", func(context.Context) (healthcheck.Status, string, interface{}) {
		state := b.State()
		metadata := map[string]string{"breaker": state.String()}
		if state == client.StateClosed {
			return healthcheck.StatusHealthy, "", metadata
		}
		return healthcheck.StatusDegraded, "remote API failing, serving local catalog", metadata
	})
}

// NewRemoteStrategy wraps the client as the first strategy in the chain
func NewRemoteStrategy(c *client.RecipeClient, mode outbound.ModeSource, recorder outbound.Recorder) *collection.Remote {
	if c == nil {
		return nil
	}
	return collection.NewRemote(c, mode, recorder)
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(store outbound.KeyValueStore, cfg *config.Config, log *zap.Logger) *collection.Favorites {
		return collection.NewFavorites(store, cfg.Storage.FavoritesKey, log)
	},
	collection.NewLocal,
	NewService,
	func(s *collection.Service) inbound.CollectionService { return s },
)

// NewService builds the dual-path collection service
func NewService(
	local *collection.Local,
	remote *collection.Remote,
	favorites *collection.Favorites,
	recorder outbound.Recorder,
	tp trace.TracerProvider,
	cfg *config.Config,
	log *zap.Logger,
) *collection.Service {
	return collection.NewService(local, remote, favorites, recorder, log,
		collection.WithSyncTimeout(cfg.Remote.SyncTimeout),
		collection.WithTracer(tp.Tracer(monitoring.TracerName)),
	)
}

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewCollectionHandlers,
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
	service *collection.Service,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Foodiee API",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("storage", cfg.Storage.Driver),
				zap.Bool("remote", cfg.Remote.Enabled()),
			)

			// Bind before returning so a taken port fails startup
			if err := srv.Listen(); err != nil {
				return err
			}

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Foodiee API")

			// Shutdown HTTP server
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			// Let in-flight favorite syncs finish
			if err := service.Flush(ctx); err != nil {
				log.Warn("Favorite syncs still pending at shutdown", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
