package gorm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/foodiee/recipes/internal/domain/recipe"
	gormstore "github.com/foodiee/recipes/internal/infrastructure/persistence/gorm"
	"github.com/foodiee/recipes/internal/ports/outbound"
	"github.com/foodiee/recipes/test/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *gormstore.CatalogRepository
	kv      *gormstore.KeyValueStore
	details []recipe.Detail
}

func (suite *RepositoryTestSuite) SetupSubTest() {
	suite.ctx = context.Background()
	db := testutils.NewTestDB(suite.T())
	suite.catalog = gormstore.NewCatalogRepository(db)
	suite.kv = gormstore.NewKeyValueStore(db)

	factory := testutils.NewRecipeFactory(42)
	suite.details = nil
	for _, s := range factory.Catalog(5) {
		suite.details = append(suite.details, factory.Detail(s))
	}
}

func (suite *RepositoryTestSuite) TestCatalog() {
	suite.Run("Seed_ShouldPreserveOrderAndFields", func() {
		// Act
		seeded, err := suite.catalog.SeedIfEmpty(suite.ctx, suite.details)

		// Assert
		require.NoError(suite.T(), err)
		assert.True(suite.T(), seeded)

		summaries, err := suite.catalog.Summaries(suite.ctx)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), summaries, len(suite.details))
		for i, s := range summaries {
			want := suite.details[i].Summary
			assert.Equal(suite.T(), want.ID, s.ID)
			assert.Equal(suite.T(), want.Title, s.Title)
			assert.Equal(suite.T(), want.Cuisine, s.Cuisine)
			assert.Equal(suite.T(), want.Difficulty, s.Difficulty)
			assert.ElementsMatch(suite.T(), want.Tags, s.Tags)
			assert.ElementsMatch(suite.T(), want.Dietary, s.Dietary)
			assert.Equal(suite.T(), want.CreatedAt, s.CreatedAt)
			assert.InDelta(suite.T(), want.Rating, s.Rating, 0.0001)
		}
	})

	suite.Run("SecondSeed_ShouldBeNoop", func() {
		_, err := suite.catalog.SeedIfEmpty(suite.ctx, suite.details)
		require.NoError(suite.T(), err)

		seeded, err := suite.catalog.SeedIfEmpty(suite.ctx, suite.details[:1])

		require.NoError(suite.T(), err)
		assert.False(suite.T(), seeded)
		count, err := suite.catalog.Count(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(len(suite.details)), count)
	})

	suite.Run("Detail_ShouldRoundTripDocument", func() {
		require.NoError(suite.T(), suite.catalog.Replace(suite.ctx, suite.details))
		want := suite.details[2]

		got, err := suite.catalog.Detail(suite.ctx, want.ID)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), want.Title, got.Title)
		assert.Equal(suite.T(), want.Ingredients, got.Ingredients)
		assert.Equal(suite.T(), want.Steps, got.Steps)
		assert.Equal(suite.T(), want.Nutrition, got.Nutrition)
		assert.Equal(suite.T(), want.Author, got.Author)
		assert.False(suite.T(), got.Favorite)
	})

	suite.Run("Replace_ShouldUpdateExistingRows", func() {
		require.NoError(suite.T(), suite.catalog.Replace(suite.ctx, suite.details))
		updated := suite.details[0]
		updated.Title = "Renamed"

		require.NoError(suite.T(), suite.catalog.Replace(suite.ctx, []recipe.Detail{updated}))

		got, err := suite.catalog.Detail(suite.ctx, updated.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Renamed", got.Title)
		count, _ := suite.catalog.Count(suite.ctx)
		assert.Equal(suite.T(), int64(len(suite.details)), count)
	})

	suite.Run("MissingDetail_ShouldReturnNotFound", func() {
		_, err := suite.catalog.Detail(suite.ctx, "nope")

		assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)
	})
}

func (suite *RepositoryTestSuite) TestKeyValueStore() {
	suite.Run("MissingKey_ShouldReturnSentinel", func() {
		_, err := suite.kv.Get(suite.ctx, "foodiee.favorites")

		assert.ErrorIs(suite.T(), err, outbound.ErrKeyNotFound)
	})

	suite.Run("Set_ShouldUpsert", func() {
		require.NoError(suite.T(), suite.kv.Set(suite.ctx, "foodiee.favorites", []byte(`["a"]`)))
		require.NoError(suite.T(), suite.kv.Set(suite.ctx, "foodiee.favorites", []byte(`["a","b"]`)))

		got, err := suite.kv.Get(suite.ctx, "foodiee.favorites")

		require.NoError(suite.T(), err)
		assert.JSONEq(suite.T(), `["a","b"]`, string(got))
	})

	suite.Run("Remove_ShouldDeleteKey", func() {
		require.NoError(suite.T(), suite.kv.Set(suite.ctx, "k", []byte("v")))

		require.NoError(suite.T(), suite.kv.Remove(suite.ctx, "k"))
		require.NoError(suite.T(), suite.kv.Remove(suite.ctx, "k"))

		_, err := suite.kv.Get(suite.ctx, "k")
		assert.ErrorIs(suite.T(), err, outbound.ErrKeyNotFound)
		assert.NoError(suite.T(), suite.kv.Ping(suite.ctx))
	})
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
