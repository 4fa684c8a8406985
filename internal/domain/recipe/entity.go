// Package recipe contains the core domain types for the recipe library:
// catalog entries, full recipe details, and the vocabulary used to filter them.
package recipe

import (
	"strings"
	"time"
)

// Summary is a catalog entry as shown in the library grid.
// Favorite is derived from the device's favorite set and is never part of
// the canonical record.
type Summary struct {
	ID               string       `json:"id" yaml:"id"`
	Slug             string       `json:"slug" yaml:"slug"`
	Title            string       `json:"title" yaml:"title"`
	Description      string       `json:"description" yaml:"description"`
	Cuisine          string       `json:"cuisine" yaml:"cuisine"`
	MealType         MealType     `json:"mealType" yaml:"mealType"`
	Difficulty       Difficulty   `json:"difficulty" yaml:"difficulty"`
	Tags             []string     `json:"tags" yaml:"tags"`
	Dietary          []DietaryTag `json:"dietary" yaml:"dietary"`
	TotalTimeMinutes int          `json:"totalTimeMinutes" yaml:"totalTimeMinutes"`
	PrepTimeMinutes  int          `json:"prepTimeMinutes" yaml:"prepTimeMinutes"`
	CookTimeMinutes  int          `json:"cookTimeMinutes" yaml:"cookTimeMinutes"`
	Servings         int          `json:"servings" yaml:"servings"`
	Rating           float64      `json:"rating" yaml:"rating"`
	RatingCount      int          `json:"ratingCount" yaml:"ratingCount"`
	Trending         bool         `json:"trending" yaml:"trending"`
	Favorite         bool         `json:"favorite" yaml:"-"`
	Image            string       `json:"image" yaml:"image"`
	CreatedAt        string       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        string       `json:"updatedAt" yaml:"updatedAt"`
}

// HasDietary reports whether the recipe carries the given dietary label.
func (s Summary) HasDietary(tag DietaryTag) bool {
	for _, d := range s.Dietary {
		if d == tag {
			return true
		}
	}
	return false
}

// HasAllDietary reports whether every requested label is present.
func (s Summary) HasAllDietary(tags []DietaryTag) bool {
	for _, t := range tags {
		if !s.HasDietary(t) {
			return false
		}
	}
	return true
}

// HasTag reports whether the recipe carries the given free-text tag.
func (s Summary) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesCuisine compares cuisines case-insensitively.
func (s Summary) MatchesCuisine(cuisine string) bool {
	return strings.EqualFold(s.Cuisine, cuisine)
}

// CreatedTime parses CreatedAt. Unparseable or empty values yield the zero time.
func (s Summary) CreatedTime() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// MatchesSearch reports whether the lowercased needle occurs in the title,
// description, cuisine, any tag, or any dietary label.
func (s Summary) MatchesSearch(needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{s.Title, s.Description, s.Cuisine} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, t := range s.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	for _, d := range s.Dietary {
		if strings.Contains(strings.ToLower(string(d)), needle) {
			return true
		}
	}
	return false
}

// Detail extends Summary with everything the step reader needs.
type Detail struct {
	Summary          `yaml:",inline"`
	Ingredients      []Ingredient `json:"ingredients" yaml:"ingredients"`
	Steps            []Step       `json:"steps" yaml:"steps"`
	Equipment        []string     `json:"equipment" yaml:"equipment"`
	Nutrition        Nutrition    `json:"nutrition" yaml:"nutrition"`
	Author           Author       `json:"author" yaml:"author"`
	RelatedRecipeIDs []string     `json:"relatedRecipeIds" yaml:"relatedRecipeIds"`
	SourceURL        string       `json:"sourceUrl,omitempty" yaml:"sourceUrl"`
	VideoURL         string       `json:"videoUrl,omitempty" yaml:"videoUrl"`
}
