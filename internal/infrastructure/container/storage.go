package container

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/config"
	gormstore "github.com/foodiee/recipes/internal/infrastructure/persistence/gorm"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/memory"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/postgres"
	redisstore "github.com/foodiee/recipes/internal/infrastructure/persistence/redis"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/sqlite"
	"github.com/foodiee/recipes/internal/ports/outbound"
	"github.com/foodiee/recipes/pkg/healthcheck"
)

// Storage bundles the catalog and favorite store selected by storage.driver
type Storage struct {
	Driver  string
	Catalog outbound.CatalogRepository
	Store   outbound.KeyValueStore
	Checker healthcheck.Checker

	closers []func() error
}

// Close releases the underlying connections
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStorage connects the configured driver. SQL drivers hold both the
// catalog and the favorites and are seeded from details when empty; the
// memory and redis drivers serve the catalog from details directly.
func OpenStorage(ctx context.Context, cfg *config.Config, details []recipe.Detail, log *zap.Logger) (*Storage, error) {
	log = log.Named("storage")
	s := &Storage{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		s.Catalog = memory.NewCatalogRepository(details)
		s.Store = memory.NewKeyValueStore()
		s.Checker = healthcheck.NewPingChecker(func(context.Context) error { return nil }, false)

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.Catalog = memory.NewCatalogRepository(details)
		s.Store = redisstore.NewKeyValueStore(client, cfg.Redis.KeyPrefix, log)
		// favorites degrade to session memory when redis is gone
		s.Checker = healthcheck.NewRedisChecker(client, false)

	case config.DriverSQLite:
		level := gormlogger.Silent
		if cfg.App.Debug {
			level = gormlogger.Info
		}
		db, err := sqlite.SetupDatabase(cfg.Storage.SQLitePath, level)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		if err := s.useSQL(ctx, db, details, log); err != nil {
			_ = s.Close()
			return nil, err
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Storage.SQLitePath))

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := s.useSQL(ctx, db, details, log); err != nil {
			_ = s.Close()
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	log.Info("Storage ready", zap.String("driver", s.Driver), zap.Int("seed_recipes", len(details)))
	return s, nil
}

func (s *Storage) useSQL(ctx context.Context, db *gorm.DB, details []recipe.Detail, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	s.closers = append(s.closers, sqlDB.Close)

	if err := sqlite.SeedDatabase(ctx, db, details, log); err != nil {
		return err
	}

	kv := gormstore.NewKeyValueStore(db)
	s.Catalog = gormstore.NewCatalogRepository(db)
	s.Store = kv
	s.Checker = healthcheck.NewPingChecker(kv.Ping, true)
	return nil
}
