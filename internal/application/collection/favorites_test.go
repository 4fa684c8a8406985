package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/foodiee/recipes/test/testutils"
)

// FavoritesTestSuite covers the device favorite set
type FavoritesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *testutils.MockKeyValueStore
}

func (suite *FavoritesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testutils.NewMockKeyValueStore()
}

func (suite *FavoritesTestSuite) SetupSubTest() {
	suite.store = testutils.NewMockKeyValueStore()
}

func (suite *FavoritesTestSuite) newFavorites() *Favorites {
	return NewFavorites(suite.store, "", zaptest.NewLogger(suite.T()))
}

func (suite *FavoritesTestSuite) TestToggle() {
	suite.Run("RepeatedAdd_ShouldBeIdempotent", func() {
		// Arrange
		favs := suite.newFavorites()

		// Act
		first := favs.Set(suite.ctx, "ramen", true)
		second := favs.Set(suite.ctx, "ramen", true)

		// Assert
		assert.True(suite.T(), first)
		assert.False(suite.T(), second)
		assert.Equal(suite.T(), []string{"ramen"}, favs.IDs(suite.ctx))
		assert.True(suite.T(), favs.Contains(suite.ctx, "ramen"))
	})

	suite.Run("Remove_ShouldDropId", func() {
		favs := suite.newFavorites()
		favs.Set(suite.ctx, "a", true)
		favs.Set(suite.ctx, "b", true)

		favs.Set(suite.ctx, "a", false)

		assert.Equal(suite.T(), []string{"b"}, favs.IDs(suite.ctx))
		assert.False(suite.T(), favs.Contains(suite.ctx, "a"))
	})

	suite.Run("RemoveUnknown_ShouldNotWrite", func() {
		favs := suite.newFavorites()
		writes := suite.store.Writes()

		changed := favs.Set(suite.ctx, "ghost", false)

		assert.False(suite.T(), changed)
		assert.Equal(suite.T(), writes, suite.store.Writes())
	})
}

func (suite *FavoritesTestSuite) TestPersistence() {
	suite.Run("Set_ShouldWriteJSONArrayUnderFixedKey", func() {
		// Arrange
		favs := suite.newFavorites()

		// Act
		favs.Set(suite.ctx, "a", true)
		favs.Set(suite.ctx, "b", true)

		// Assert
		raw, ok := suite.store.Raw(DefaultFavoritesKey)
		require.True(suite.T(), ok)
		assert.JSONEq(suite.T(), `["a","b"]`, string(raw))
	})

	suite.Run("NewInstance_ShouldLoadPersistedSet", func() {
		require.NoError(suite.T(), suite.store.Set(suite.ctx, DefaultFavoritesKey, []byte(`["x","y","x",""]`)))

		favs := suite.newFavorites()

		assert.Equal(suite.T(), []string{"x", "y"}, favs.IDs(suite.ctx))
	})

	suite.Run("LastRemoval_ShouldClearKey", func() {
		favs := suite.newFavorites()
		favs.Set(suite.ctx, "solo", true)

		favs.Set(suite.ctx, "solo", false)

		_, ok := suite.store.Raw(DefaultFavoritesKey)
		assert.False(suite.T(), ok)
	})

	suite.Run("CorruptEntry_ShouldStartEmptyAndBeReplaced", func() {
		require.NoError(suite.T(), suite.store.Set(suite.ctx, DefaultFavoritesKey, []byte(`{not json`)))
		favs := suite.newFavorites()

		assert.Empty(suite.T(), favs.IDs(suite.ctx))
		favs.Set(suite.ctx, "fresh", true)

		raw, _ := suite.store.Raw(DefaultFavoritesKey)
		assert.JSONEq(suite.T(), `["fresh"]`, string(raw))
		assert.True(suite.T(), favs.Persistent())
	})
}

func (suite *FavoritesTestSuite) TestDegradation() {
	suite.Run("UnreadableStore_ShouldKeepWorkingInMemory", func() {
		// Arrange
		suite.store.Fail(true)
		favs := suite.newFavorites()

		// Act
		changed := favs.Set(suite.ctx, "ramen", true)

		// Assert
		assert.True(suite.T(), changed)
		assert.True(suite.T(), favs.Contains(suite.ctx, "ramen"))
		assert.False(suite.T(), favs.Persistent())
	})

	suite.Run("WriteFailure_ShouldKeepLocalChange", func() {
		favs := suite.newFavorites()
		favs.Set(suite.ctx, "a", true)
		suite.store.Fail(true)

		favs.Set(suite.ctx, "b", true)
		suite.store.Fail(false)
		favs.Set(suite.ctx, "c", true)

		assert.Equal(suite.T(), []string{"a", "b", "c"}, favs.IDs(suite.ctx))
		assert.False(suite.T(), favs.Persistent())
		raw, _ := suite.store.Raw(DefaultFavoritesKey)
		assert.JSONEq(suite.T(), `["a"]`, string(raw))
	})

	suite.Run("NilStore_ShouldBeSessionOnly", func() {
		favs := NewFavorites(nil, "custom", nil)

		favs.Set(suite.ctx, "a", true)

		assert.True(suite.T(), favs.Contains(suite.ctx, "a"))
		assert.False(suite.T(), favs.Persistent())
	})
}

func (suite *FavoritesTestSuite) TestLookup() {
	suite.Run("Lookup_ShouldBeSnapshot", func() {
		favs := suite.newFavorites()
		favs.Set(suite.ctx, "a", true)

		lookup := favs.Lookup(suite.ctx)
		favs.Set(suite.ctx, "b", true)

		assert.True(suite.T(), lookup("a"))
		assert.False(suite.T(), lookup("b"))
	})
}

func TestFavoritesTestSuite(t *testing.T) {
	suite.Run(t, new(FavoritesTestSuite))
}
