package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm/logger"

	"github.com/foodiee/recipes/internal/infrastructure/persistence/catalog"
	gormstore "github.com/foodiee/recipes/internal/infrastructure/persistence/gorm"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/sqlite"
	"github.com/foodiee/recipes/test/testutils"
)

func TestSeedDatabase_ShouldLoadEmbeddedCatalogOnce(t *testing.T) {
	ctx := context.Background()
	details, err := catalog.Default()
	require.NoError(t, err)
	db := testutils.NewTestDB(t)

	require.NoError(t, sqlite.SeedDatabase(ctx, db, details, zaptest.NewLogger(t)))
	require.NoError(t, sqlite.SeedDatabase(ctx, db, details[:2], zaptest.NewLogger(t)))

	repo := gormstore.NewCatalogRepository(db)
	summaries, err := repo.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, len(details))
	assert.Equal(t, details[0].ID, summaries[0].ID)
	assert.Equal(t, details[len(details)-1].ID, summaries[len(summaries)-1].ID)
}

func TestSetupDatabase_FileShouldPersistAcrossConnections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "foodiee.db")

	db, err := sqlite.SetupDatabase(path, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, gormstore.NewKeyValueStore(db).Set(ctx, "foodiee.favorites", []byte(`["x"]`)))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := sqlite.SetupDatabase(path, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := reopened.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	got, err := gormstore.NewKeyValueStore(reopened).Get(ctx, "foodiee.favorites")
	require.NoError(t, err)
	assert.JSONEq(t, `["x"]`, string(got))
}
