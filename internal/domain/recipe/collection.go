package recipe

// SortKey selects the ordering of a collection page
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortRating     SortKey = "rating"
	SortTime       SortKey = "time"
	SortNew        SortKey = "new"
	SortDifficulty SortKey = "difficulty"
	SortFavorites  SortKey = "favorites"
)

// Valid reports whether the key is one of the known sort orders.
func (k SortKey) Valid() bool {
	switch k {
	case SortRelevance, SortRating, SortTime, SortNew, SortDifficulty, SortFavorites:
		return true
	}
	return false
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100

	DefaultSuggestionLimit = 6
)

// Query is a filter/sort/pagination request against the catalog.
// Zero values mean "no constraint" for every filter field.
type Query struct {
	Search         string       `json:"search,omitempty"`
	Cuisine        string       `json:"cuisine,omitempty"`
	MealTypes      []MealType   `json:"mealTypes,omitempty"`
	Dietary        []DietaryTag `json:"dietary,omitempty"`
	Difficulty     []Difficulty `json:"difficulty,omitempty"`
	MaxTimeMinutes int          `json:"maxTimeMinutes,omitempty"`
	MinRating      float64      `json:"minRating,omitempty"`
	FavoritesOnly  bool         `json:"favoritesOnly,omitempty"`
	VegetarianOnly bool         `json:"vegetarianOnly,omitempty"`
	Sort           SortKey      `json:"sort,omitempty"`
	Page           int          `json:"page"`
	PageSize       int          `json:"pageSize"`
}

// Normalized returns a copy with paging and sort defaults applied.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if !q.Sort.Valid() {
		q.Sort = SortRelevance
	}
	return q
}

// FacetEntry is one filter chip: a value, how many filtered items match it,
// and whether it is part of the active query.
type FacetEntry struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Facets groups facet entries by dimension
type Facets struct {
	Cuisines     []FacetEntry `json:"cuisines"`
	MealTypes    []FacetEntry `json:"mealTypes"`
	Dietary      []FacetEntry `json:"dietary"`
	Difficulties []FacetEntry `json:"difficulties"`
	Tags         []FacetEntry `json:"tags"`
}

// Suggestion is a title match offered while the user types
type Suggestion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
	Icon      string `json:"icon"`
}

// CollectionResult is one page of a filtered, sorted collection
type CollectionResult struct {
	Items       []Summary    `json:"items"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
	HasMore     bool         `json:"hasMore"`
	Suggestions []Suggestion `json:"suggestions"`
	Facets      Facets       `json:"facets"`
}

// FilterOptions lists the distinct values available for each filter
type FilterOptions struct {
	Cuisines     []string `json:"cuisines"`
	Difficulties []string `json:"difficulties"`
	MealTypes    []string `json:"mealTypes"`
	Dietary      []string `json:"dietary"`
}
