// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

var (
	// ErrKeyNotFound is returned by a KeyValueStore when the key has never been set
	ErrKeyNotFound = errors.New("key not found")
	// ErrRemoteNotFound matches remote errors for a 404 response
	ErrRemoteNotFound = errors.New("remote resource not found")
	// ErrCircuitOpen is returned without a network call while the remote is tripped
	ErrCircuitOpen = errors.New("remote circuit open")
)

// CatalogRepository provides the recipe catalog used by the local engine
type CatalogRepository interface {
	// Summaries returns every catalog entry in catalog order
	Summaries(ctx context.Context) ([]recipe.Summary, error)
	// Detail returns recipe.ErrRecipeNotFound when no record matches
	Detail(ctx context.Context, id string) (*recipe.Detail, error)
}

// KeyValueStore is the persistence primitive behind the favorite set
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// RemoteRecipeAPI is the backend HTTP API consumed by the collection service
type RemoteRecipeAPI interface {
	Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error)
	Detail(ctx context.Context, id string) (*recipe.Detail, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error)
	Filters(ctx context.Context) (*recipe.FilterOptions, error)
}

// ModeSource tells the service whether remote calls are disabled
type ModeSource interface {
	UseMocks() bool
}

// StaticMode is a fixed ModeSource
type StaticMode bool

// UseMocks implements ModeSource
func (m StaticMode) UseMocks() bool { return bool(m) }

// Recorder receives operational signals from the collection service
type Recorder interface {
	RemoteCall(operation, outcome string, duration time.Duration)
	RemoteFallback(operation string)
	FavoriteSync(outcome string)
}
