// Package collection provides the application layer for the recipe library:
// the local query engine, the device favorite set, and the service that
// prefers the remote API and falls back to local computation.
package collection

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

// FavoriteLookup reports whether a recipe id is in the favorite set.
type FavoriteLookup func(id string) bool

// Run answers a collection query against a catalog snapshot. It is
// deterministic and has no side effects; the favorite set is only read
// through isFavorite.
func Run(catalog []recipe.Summary, query recipe.Query, isFavorite FavoriteLookup) *recipe.CollectionResult {
	q := query.Normalized()

	annotated := Annotate(catalog, isFavorite)
	filtered := Filter(annotated, q)
	SortItems(filtered, q.Sort)

	total := len(filtered)
	return &recipe.CollectionResult{
		Items:       Paginate(filtered, q.Page, q.PageSize),
		Total:       total,
		Page:        q.Page,
		PageSize:    q.PageSize,
		HasMore:     q.Page < pageCount(total, q.PageSize),
		Suggestions: Suggest(catalog, q.Search, recipe.DefaultSuggestionLimit),
		Facets:      BuildFacets(annotated, filtered, q),
	}
}

// Annotate returns a copy of items with Favorite set from the lookup.
func Annotate(items []recipe.Summary, isFavorite FavoriteLookup) []recipe.Summary {
	out := make([]recipe.Summary, len(items))
	for i, item := range items {
		item.Favorite = isFavorite != nil && isFavorite(item.ID)
		out[i] = item
	}
	return out
}

// Filter applies the query's predicates in pipeline order:
// search, cuisine, meal types, dietary, difficulty, max time, min rating,
// vegetarian-only, favorites-only. Items must already carry their Favorite flag.
func Filter(items []recipe.Summary, q recipe.Query) []recipe.Summary {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]recipe.Summary, 0, len(items))
	for _, item := range items {
		if !item.MatchesSearch(search) {
			continue
		}
		if q.Cuisine != "" && !item.MatchesCuisine(q.Cuisine) {
			continue
		}
		if len(q.MealTypes) > 0 && !slices.Contains(q.MealTypes, item.MealType) {
			continue
		}
		if len(q.Dietary) > 0 && !item.HasAllDietary(q.Dietary) {
			continue
		}
		if len(q.Difficulty) > 0 && !slices.Contains(q.Difficulty, item.Difficulty) {
			continue
		}
		if q.MaxTimeMinutes > 0 && item.TotalTimeMinutes > q.MaxTimeMinutes {
			continue
		}
		if q.MinRating > 0 && item.Rating < q.MinRating {
			continue
		}
		if q.VegetarianOnly && !item.HasDietary(recipe.DietaryVegetarian) {
			continue
		}
		if q.FavoritesOnly && !item.Favorite {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortItems orders items in place. The sort is stable, so equal keys keep
// their catalog order.
func SortItems(items []recipe.Summary, key recipe.SortKey) {
	slices.SortStableFunc(items, comparator(key))
}

func comparator(key recipe.SortKey) func(a, b recipe.Summary) int {
	switch key {
	case recipe.SortRating:
		return func(a, b recipe.Summary) int { return cmp.Compare(b.Rating, a.Rating) }
	case recipe.SortTime:
		return func(a, b recipe.Summary) int { return cmp.Compare(a.TotalTimeMinutes, b.TotalTimeMinutes) }
	case recipe.SortNew:
		return func(a, b recipe.Summary) int { return b.CreatedTime().Compare(a.CreatedTime()) }
	case recipe.SortDifficulty:
		return func(a, b recipe.Summary) int { return cmp.Compare(a.Difficulty.Rank(), b.Difficulty.Rank()) }
	case recipe.SortFavorites:
		return func(a, b recipe.Summary) int { return cmp.Compare(firstIf(a.Favorite), firstIf(b.Favorite)) }
	default:
		return func(a, b recipe.Summary) int {
			if c := cmp.Compare(firstIf(a.Trending), firstIf(b.Trending)); c != 0 {
				return c
			}
			return cmp.Compare(b.RatingCount, a.RatingCount)
		}
	}
}

func firstIf(flag bool) int {
	if flag {
		return 0
	}
	return 1
}

// Paginate returns the 1-based page of items. Pages past the end are
// empty; the bounds check runs before any multiplication so huge page
// numbers cannot overflow.
func Paginate(items []recipe.Summary, page, pageSize int) []recipe.Summary {
	if page < 1 || pageSize < 1 || page > pageCount(len(items), pageSize) {
		return []recipe.Summary{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return slices.Clone(items[start:end])
}

// pageCount is the number of non-empty pages for total items.
func pageCount(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Suggest matches term against titles only, case-insensitively, keeping
// catalog order and returning at most limit entries.
func Suggest(catalog []recipe.Summary, term string, limit int) []recipe.Suggestion {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []recipe.Suggestion{}
	}
	if limit <= 0 {
		limit = recipe.DefaultSuggestionLimit
	}

	out := make([]recipe.Suggestion, 0, limit)
	for _, item := range catalog {
		if !strings.Contains(strings.ToLower(item.Title), needle) {
			continue
		}
		out = append(out, recipe.Suggestion{
			ID:        item.ID,
			Title:     item.Title,
			Highlight: item.Cuisine,
			Icon:      string(item.Difficulty),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// BuildFacets counts, for every value known in the catalog, how many
// filtered items match it under that dimension's filter rule.
func BuildFacets(catalog, filtered []recipe.Summary, q recipe.Query) recipe.Facets {
	v := vocabularyOf(catalog)
	search := strings.TrimSpace(q.Search)

	facets := recipe.Facets{
		Cuisines:     make([]recipe.FacetEntry, 0, len(v.cuisines)),
		MealTypes:    make([]recipe.FacetEntry, 0, len(v.mealTypes)),
		Dietary:      make([]recipe.FacetEntry, 0, len(v.dietary)),
		Difficulties: make([]recipe.FacetEntry, 0, len(v.difficulties)),
		Tags:         make([]recipe.FacetEntry, 0, len(v.tags)),
	}

	for _, c := range v.cuisines {
		facets.Cuisines = append(facets.Cuisines, recipe.FacetEntry{
			Value:    c,
			Count:    countWhere(filtered, func(s recipe.Summary) bool { return s.MatchesCuisine(c) }),
			Selected: q.Cuisine != "" && strings.EqualFold(q.Cuisine, c),
		})
	}
	for _, m := range v.mealTypes {
		facets.MealTypes = append(facets.MealTypes, recipe.FacetEntry{
			Value:    string(m),
			Count:    countWhere(filtered, func(s recipe.Summary) bool { return s.MealType == m }),
			Selected: slices.Contains(q.MealTypes, m),
		})
	}
	for _, d := range v.dietary {
		facets.Dietary = append(facets.Dietary, recipe.FacetEntry{
			Value:    string(d),
			Count:    countWhere(filtered, func(s recipe.Summary) bool { return s.HasDietary(d) }),
			Selected: slices.Contains(q.Dietary, d),
		})
	}
	for _, d := range v.difficulties {
		facets.Difficulties = append(facets.Difficulties, recipe.FacetEntry{
			Value:    string(d),
			Count:    countWhere(filtered, func(s recipe.Summary) bool { return s.Difficulty == d }),
			Selected: slices.Contains(q.Difficulty, d),
		})
	}
	for _, t := range v.tags {
		facets.Tags = append(facets.Tags, recipe.FacetEntry{
			Value:    t,
			Count:    countWhere(filtered, func(s recipe.Summary) bool { return s.HasTag(t) }),
			Selected: search != "" && strings.EqualFold(search, t),
		})
	}
	return facets
}

// Options lists the distinct filter values present in the catalog.
func Options(catalog []recipe.Summary) *recipe.FilterOptions {
	v := vocabularyOf(catalog)

	opts := &recipe.FilterOptions{
		Cuisines:     slices.Clone(v.cuisines),
		Difficulties: make([]string, 0, len(v.difficulties)),
		MealTypes:    make([]string, 0, len(v.mealTypes)),
		Dietary:      make([]string, 0, len(v.dietary)),
	}
	for _, d := range v.difficulties {
		if countWhere(catalog, func(s recipe.Summary) bool { return s.Difficulty == d }) > 0 {
			opts.Difficulties = append(opts.Difficulties, string(d))
		}
	}
	for _, m := range v.mealTypes {
		opts.MealTypes = append(opts.MealTypes, string(m))
	}
	for _, d := range v.dietary {
		opts.Dietary = append(opts.Dietary, string(d))
	}

	sort.Strings(opts.Cuisines)
	sort.Strings(opts.MealTypes)
	sort.Strings(opts.Dietary)
	return opts
}

func countWhere(items []recipe.Summary, match func(recipe.Summary) bool) int {
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n
}

// vocabulary holds the known values per facet dimension in first-seen order.
type vocabulary struct {
	cuisines     []string
	mealTypes    []recipe.MealType
	dietary      []recipe.DietaryTag
	difficulties []recipe.Difficulty
	tags         []string
}

func vocabularyOf(catalog []recipe.Summary) vocabulary {
	v := vocabulary{difficulties: slices.Clone(recipe.Difficulties)}
	seenCuisine := make(map[string]bool)
	seenTag := make(map[string]bool)

	for _, item := range catalog {
		if item.Cuisine != "" && !seenCuisine[strings.ToLower(item.Cuisine)] {
			seenCuisine[strings.ToLower(item.Cuisine)] = true
			v.cuisines = append(v.cuisines, item.Cuisine)
		}
		if item.MealType != "" && !slices.Contains(v.mealTypes, item.MealType) {
			v.mealTypes = append(v.mealTypes, item.MealType)
		}
		for _, d := range item.Dietary {
			if !slices.Contains(v.dietary, d) {
				v.dietary = append(v.dietary, d)
			}
		}
		if item.Difficulty != "" && !slices.Contains(v.difficulties, item.Difficulty) {
			v.difficulties = append(v.difficulties, item.Difficulty)
		}
		for _, t := range item.Tags {
			if !seenTag[t] {
				seenTag[t] = true
				v.tags = append(v.tags, t)
			}
		}
	}
	return v
}
