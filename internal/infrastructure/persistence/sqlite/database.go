// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodiee/recipes/internal/domain/recipe"
	gormstore "github.com/foodiee/recipes/internal/infrastructure/persistence/gorm"
)

// InMemory is the path that selects a private in-memory database
const InMemory = ":memory:"

// SetupDatabase creates, configures and migrates the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = InMemory
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// every pooled connection to :memory: would get its own empty database
	if dbPath == InMemory {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := gormstore.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates an empty catalog table with details
func SeedDatabase(ctx context.Context, db *gorm.DB, details []recipe.Detail, log *zap.Logger) error {
	seeded, err := gormstore.NewCatalogRepository(db).SeedIfEmpty(ctx, details)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("Seeded recipe catalog", zap.Int("recipes", len(details)))
	}
	return nil
}
