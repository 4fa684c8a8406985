package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// Strategy is one source able to answer collection operations. The service
// tries its strategies in order until one succeeds.
type Strategy interface {
	Name() string
	Enabled() bool
	Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error)
	Detail(ctx context.Context, id string) (*recipe.Detail, error)
	Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error)
	Filters(ctx context.Context) (*recipe.FilterOptions, error)
}

// Local answers every operation from the catalog repository and the
// device favorite set.
type Local struct {
	catalog   outbound.CatalogRepository
	favorites *Favorites
}

// NewLocal creates the local strategy.
func NewLocal(catalog outbound.CatalogRepository, favorites *Favorites) *Local {
	return &Local{catalog: catalog, favorites: favorites}
}

func (l *Local) Name() string  { return "local" }
func (l *Local) Enabled() bool { return true }

func (l *Local) Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error) {
	summaries, err := l.catalog.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Run(summaries, query, l.favorites.Lookup(ctx)), nil
}

func (l *Local) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	detail, err := l.catalog.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load recipe %s: %w", id, err)
	}
	out := *detail
	out.Favorite = l.favorites.Contains(ctx, id)
	return &out, nil
}

func (l *Local) Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error) {
	summaries, err := l.catalog.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Suggest(summaries, term, limit), nil
}

func (l *Local) Filters(ctx context.Context) (*recipe.FilterOptions, error) {
	summaries, err := l.catalog.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Options(summaries), nil
}
