// Package memory provides in-memory implementations of the storage ports
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/foodiee/recipes/internal/ports/outbound"
)

// KeyValueStore implements outbound.KeyValueStore on a map. Values are
// copied on the way in and out.
type KeyValueStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

var _ outbound.KeyValueStore = (*KeyValueStore)(nil)

// NewKeyValueStore creates an empty store
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string][]byte)}
}

// Get retrieves a value
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return nil, outbound.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

// Set stores a value
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = slices.Clone(value)
	return nil
}

// Remove deletes a key. Removing a missing key is not an error.
func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}
