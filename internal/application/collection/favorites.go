package collection

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/ports/outbound"
	apperrors "github.com/foodiee/recipes/pkg/errors"
)

// DefaultFavoritesKey is the storage key holding the favorite id array.
const DefaultFavoritesKey = "foodiee.favorites"

// Favorites is the device-local favorite set. It is loaded from the store on
// first access and written through on every change. When the store cannot be
// read or written the set keeps working from memory for the rest of the
// process lifetime.
type Favorites struct {
	store  outbound.KeyValueStore
	key    string
	logger *zap.Logger

	mu       sync.Mutex
	loaded   bool
	degraded bool
	ids      []string
}

// NewFavorites creates a favorite set over store. A nil store yields a
// session-only set.
func NewFavorites(store outbound.KeyValueStore, key string, logger *zap.Logger) *Favorites {
	if key == "" {
		key = DefaultFavoritesKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Favorites{
		store:    store,
		key:      key,
		logger:   logger.Named("favorites"),
		degraded: store == nil,
	}
}

// Contains reports whether id is favorited.
func (f *Favorites) Contains(ctx context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLoaded(ctx)
	return slices.Contains(f.ids, id)
}

// IDs returns the favorited ids in the order they were added.
func (f *Favorites) IDs(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLoaded(ctx)
	return slices.Clone(f.ids)
}

// Lookup returns a point-in-time FavoriteLookup for the engine.
func (f *Favorites) Lookup(ctx context.Context) FavoriteLookup {
	ids := f.IDs(ctx)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id string) bool {
		_, ok := set[id]
		return ok
	}
}

// Set adds or removes id and persists the result. Repeating the same call
// leaves the set unchanged. It reports whether the set changed.
func (f *Favorites) Set(ctx context.Context, id string, favorite bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLoaded(ctx)

	idx := slices.Index(f.ids, id)
	switch {
	case favorite && idx < 0:
		f.ids = append(f.ids, id)
	case !favorite && idx >= 0:
		f.ids = slices.Delete(f.ids, idx, idx+1)
	default:
		return false
	}

	f.persist(ctx)
	return true
}

// Persistent reports whether changes still reach the backing store.
func (f *Favorites) Persistent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.degraded
}

// ensureLoaded must be called with mu held.
func (f *Favorites) ensureLoaded(ctx context.Context) {
	if f.loaded {
		return
	}
	f.loaded = true
	f.ids = []string{}

	if f.degraded {
		return
	}

	raw, err := f.store.Get(ctx, f.key)
	if errors.Is(err, outbound.ErrKeyNotFound) {
		return
	}
	if err != nil {
		f.degrade(apperrors.NewPersistenceUnavailableError("load favorites", err))
		return
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		// A corrupt entry is replaced on the next write.
		f.logger.Warn("Discarding unreadable favorites entry",
			zap.String("key", f.key),
			zap.Error(err),
		)
		return
	}
	for _, id := range ids {
		if id != "" && !slices.Contains(f.ids, id) {
			f.ids = append(f.ids, id)
		}
	}
}

// persist must be called with mu held.
func (f *Favorites) persist(ctx context.Context) {
	if f.degraded {
		return
	}

	if len(f.ids) == 0 {
		err := f.store.Remove(ctx, f.key)
		if err != nil && !errors.Is(err, outbound.ErrKeyNotFound) {
			f.degrade(apperrors.NewPersistenceUnavailableError("clear favorites", err))
		}
		return
	}

	raw, err := json.Marshal(f.ids)
	if err != nil {
		f.degrade(apperrors.NewPersistenceUnavailableError("encode favorites", err))
		return
	}
	if err := f.store.Set(ctx, f.key, raw); err != nil {
		f.degrade(apperrors.NewPersistenceUnavailableError("save favorites", err))
	}
}

func (f *Favorites) degrade(err error) {
	f.degraded = true
	f.logger.Error("Favorite storage unavailable, keeping favorites in memory",
		zap.String("key", f.key),
		zap.Error(err),
	)
}
