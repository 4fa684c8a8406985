package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodiee/recipes/internal/ports/outbound"
)

// KeyValueStore implements outbound.KeyValueStore on the key_values table
type KeyValueStore struct {
	db *gorm.DB
}

var _ outbound.KeyValueStore = (*KeyValueStore)(nil)

// NewKeyValueStore creates a new store
func NewKeyValueStore(db *gorm.DB) *KeyValueStore {
	return &KeyValueStore{db: db}
}

// Get retrieves a value
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var model KeyValueModel
	result := s.db.WithContext(ctx).First(&model, "kv_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrKeyNotFound
		}
		return nil, result.Error
	}
	return model.Value, nil
}

// Set inserts or replaces a value
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	model := KeyValueModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
}

// Remove deletes a key
func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&KeyValueModel{}, "kv_key = ?", key).Error
}

// Ping checks the underlying connection
func (s *KeyValueStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
