package memory

import (
	"context"
	"slices"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// CatalogRepository serves a fixed catalog held in memory
type CatalogRepository struct {
	summaries []recipe.Summary
	details   map[string]recipe.Detail
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository indexes the given recipes, keeping their order
func NewCatalogRepository(details []recipe.Detail) *CatalogRepository {
	repo := &CatalogRepository{
		summaries: make([]recipe.Summary, 0, len(details)),
		details:   make(map[string]recipe.Detail, len(details)),
	}
	for _, d := range details {
		if _, dup := repo.details[d.ID]; dup {
			continue
		}
		repo.summaries = append(repo.summaries, d.Summary)
		repo.details[d.ID] = d
	}
	return repo
}

// Summaries returns a copy of the catalog in order
func (r *CatalogRepository) Summaries(ctx context.Context) ([]recipe.Summary, error) {
	return slices.Clone(r.summaries), nil
}

// Detail looks up one recipe
func (r *CatalogRepository) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	d, ok := r.details[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return &d, nil
}
