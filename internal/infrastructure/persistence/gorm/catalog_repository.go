package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// CatalogRepository implements the catalog repository interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Summaries returns every catalog entry ordered by position
func (r *CatalogRepository) Summaries(ctx context.Context) ([]recipe.Summary, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Omit("details").
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", result.Error)
	}

	summaries := make([]recipe.Summary, len(models))
	for i := range models {
		summaries[i] = ModelToSummary(&models[i])
	}
	return summaries, nil
}

// Detail finds a recipe by ID
func (r *CatalogRepository) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	detail := ModelToDetail(&model)
	return &detail, nil
}

// Count returns the number of stored recipes
func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Replace upserts the given recipes in order. Rows not in details are kept.
func (r *CatalogRepository) Replace(ctx context.Context, details []recipe.Detail) error {
	if len(details) == 0 {
		return nil
	}
	models := make([]*RecipeModel, len(details))
	for i, d := range details {
		models[i] = RecipeToModel(d, i)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(models, 100).Error
	})
}

// SeedIfEmpty loads details only when the table has no rows
func (r *CatalogRepository) SeedIfEmpty(ctx context.Context, details []recipe.Detail) (bool, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.Replace(ctx, details); err != nil {
		return false, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return true, nil
}
