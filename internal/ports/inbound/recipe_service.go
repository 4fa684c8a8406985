// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

// CollectionService defines the use cases behind the recipe library.
// This is the primary port that HTTP handlers and the CLI use.
type CollectionService interface {
	// Queries - never fail for transport reasons; the local engine answers
	// whenever the remote API cannot.
	FetchCollection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error)
	FetchDetail(ctx context.Context, id string) (*recipe.Detail, error)
	Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error)
	AvailableFilters(ctx context.Context) (*recipe.FilterOptions, error)

	// Favorites - local state is authoritative for the device
	ToggleFavorite(ctx context.Context, id string, favorite bool) error
	Favorites(ctx context.Context) []string
}
