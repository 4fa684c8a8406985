// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// ErrStorageDisabled simulates a store that refuses all access
var ErrStorageDisabled = errors.New("storage disabled")

// MockRemoteAPI provides a mock implementation of RemoteRecipeAPI
type MockRemoteAPI struct {
	mock.Mock
}

// NewMockRemoteAPI creates a new mock remote API
func NewMockRemoteAPI() *MockRemoteAPI {
	return &MockRemoteAPI{}
}

// Collection returns a page of recipes
func (m *MockRemoteAPI) Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.CollectionResult), args.Error(1)
}

// Detail returns one recipe
func (m *MockRemoteAPI) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Detail), args.Error(1)
}

// SetFavorite records a favorite change
func (m *MockRemoteAPI) SetFavorite(ctx context.Context, id string, favorite bool) error {
	args := m.Called(ctx, id, favorite)
	return args.Error(0)
}

// Suggest returns title suggestions
func (m *MockRemoteAPI) Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Suggestion), args.Error(1)
}

// Filters returns filter options
func (m *MockRemoteAPI) Filters(ctx context.Context) (*recipe.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.FilterOptions), args.Error(1)
}

// MockKeyValueStore is an in-memory KeyValueStore that can be switched into
// a failing state and counts writes
type MockKeyValueStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	fail   bool
	writes int
}

// NewMockKeyValueStore creates an empty store
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{data: make(map[string][]byte)}
}

// Fail makes every subsequent call return ErrStorageDisabled
func (s *MockKeyValueStore) Fail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// Writes returns how many Set/Remove calls reached the store
func (s *MockKeyValueStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Raw returns the stored bytes for key without counting as access
func (s *MockKeyValueStore) Raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Get implements outbound.KeyValueStore
func (s *MockKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, ErrStorageDisabled
	}
	v, ok := s.data[key]
	if !ok {
		return nil, outbound.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements outbound.KeyValueStore
func (s *MockKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return ErrStorageDisabled
	}
	s.writes++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Remove implements outbound.KeyValueStore
func (s *MockKeyValueStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return ErrStorageDisabled
	}
	s.writes++
	delete(s.data, key)
	return nil
}

// MockCatalog is a slice-backed CatalogRepository
type MockCatalog struct {
	Items   []recipe.Summary
	Details map[string]recipe.Detail
	Err     error
}

// NewMockCatalog builds a catalog whose details are derived from items
func NewMockCatalog(items []recipe.Summary) *MockCatalog {
	details := make(map[string]recipe.Detail, len(items))
	for _, item := range items {
		details[item.ID] = recipe.Detail{Summary: item}
	}
	return &MockCatalog{Items: items, Details: details}
}

// Summaries implements outbound.CatalogRepository
func (c *MockCatalog) Summaries(context.Context) ([]recipe.Summary, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Items, nil
}

// Detail implements outbound.CatalogRepository
func (c *MockCatalog) Detail(_ context.Context, id string) (*recipe.Detail, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	d, ok := c.Details[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return &d, nil
}

// RecordedCall is one RemoteCall signal captured by MockRecorder
type RecordedCall struct {
	Operation string
	Outcome   string
}

// MockRecorder captures metrics signals
type MockRecorder struct {
	mu        sync.Mutex
	Calls     []RecordedCall
	Fallbacks []string
	Syncs     []string
}

// RemoteCall implements outbound.Recorder
func (r *MockRecorder) RemoteCall(operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, RecordedCall{Operation: operation, Outcome: outcome})
}

// RemoteFallback implements outbound.Recorder
func (r *MockRecorder) RemoteFallback(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fallbacks = append(r.Fallbacks, operation)
}

// FavoriteSync implements outbound.Recorder
func (r *MockRecorder) FavoriteSync(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Syncs = append(r.Syncs, outcome)
}

// SyncOutcomes returns a copy of the recorded favorite sync outcomes
func (r *MockRecorder) SyncOutcomes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Syncs...)
}

// MutableMode is a ModeSource that tests can flip
type MutableMode struct {
	mu       sync.RWMutex
	useMocks bool
}

// Set changes the mode
func (m *MutableMode) Set(useMocks bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.useMocks = useMocks
}

// UseMocks implements outbound.ModeSource
func (m *MutableMode) UseMocks() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.useMocks
}
