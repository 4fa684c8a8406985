package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/sqlite"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when
// the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(sqlite.InMemory, logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSeededTestDB opens a test database holding details
func NewSeededTestDB(t *testing.T, details []recipe.Detail) *gorm.DB {
	t.Helper()

	db := NewTestDB(t)
	require.NoError(t, sqlite.SeedDatabase(context.Background(), db, details, zap.NewNop()))
	return db
}
