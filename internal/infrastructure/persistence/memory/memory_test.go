package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)

	value := []byte(`["a"]`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[2] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(got), "stored value is isolated from the caller")

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository([]recipe.Detail{
		{Summary: recipe.Summary{ID: "b", Title: "Second"}},
		{Summary: recipe.Summary{ID: "a", Title: "First"}, Equipment: []string{"Wok"}},
		{Summary: recipe.Summary{ID: "b", Title: "Duplicate"}},
	})

	summaries, err := repo.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "b", summaries[0].ID)
	assert.Equal(t, "Second", summaries[0].Title)

	summaries[0].Title = "mutated"
	again, _ := repo.Summaries(ctx)
	assert.Equal(t, "Second", again[0].Title)

	detail, err := repo.Detail(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wok"}, detail.Equipment)

	_, err = repo.Detail(ctx, "zzz")
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}
