package gorm

import (
	"github.com/foodiee/recipes/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to its row at the given position
func RecipeToModel(d recipe.Detail, position int) *RecipeModel {
	dietary := make(StringSlice, len(d.Dietary))
	for i, tag := range d.Dietary {
		dietary[i] = string(tag)
	}

	return &RecipeModel{
		ID:               d.ID,
		Position:         position,
		Slug:             d.Slug,
		Title:            d.Title,
		Description:      d.Description,
		Cuisine:          d.Cuisine,
		MealType:         string(d.MealType),
		Difficulty:       string(d.Difficulty),
		Tags:             StringSlice(d.Tags),
		Dietary:          dietary,
		TotalTimeMinutes: d.TotalTimeMinutes,
		PrepTimeMinutes:  d.PrepTimeMinutes,
		CookTimeMinutes:  d.CookTimeMinutes,
		Servings:         d.Servings,
		Rating:           d.Rating,
		RatingCount:      d.RatingCount,
		Trending:         d.Trending,
		Image:            d.Image,
		PublishedAt:      d.CreatedAt,
		RevisedAt:        d.UpdatedAt,
		Details: DetailDocument{
			Ingredients:      d.Ingredients,
			Steps:            d.Steps,
			Equipment:        d.Equipment,
			Nutrition:        d.Nutrition,
			Author:           d.Author,
			RelatedRecipeIDs: d.RelatedRecipeIDs,
			SourceURL:        d.SourceURL,
			VideoURL:         d.VideoURL,
		},
	}
}

// ModelToSummary converts a row to a catalog entry
func ModelToSummary(m *RecipeModel) recipe.Summary {
	dietary := make([]recipe.DietaryTag, len(m.Dietary))
	for i, tag := range m.Dietary {
		dietary[i] = recipe.DietaryTag(tag)
	}
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return recipe.Summary{
		ID:               m.ID,
		Slug:             m.Slug,
		Title:            m.Title,
		Description:      m.Description,
		Cuisine:          m.Cuisine,
		MealType:         recipe.MealType(m.MealType),
		Difficulty:       recipe.Difficulty(m.Difficulty),
		Tags:             tags,
		Dietary:          dietary,
		TotalTimeMinutes: m.TotalTimeMinutes,
		PrepTimeMinutes:  m.PrepTimeMinutes,
		CookTimeMinutes:  m.CookTimeMinutes,
		Servings:         m.Servings,
		Rating:           m.Rating,
		RatingCount:      m.RatingCount,
		Trending:         m.Trending,
		Image:            m.Image,
		CreatedAt:        m.PublishedAt,
		UpdatedAt:        m.RevisedAt,
	}
}

// ModelToDetail converts a row to a full recipe
func ModelToDetail(m *RecipeModel) recipe.Detail {
	return recipe.Detail{
		Summary:          ModelToSummary(m),
		Ingredients:      m.Details.Ingredients,
		Steps:            m.Details.Steps,
		Equipment:        m.Details.Equipment,
		Nutrition:        m.Details.Nutrition,
		Author:           m.Details.Author,
		RelatedRecipeIDs: m.Details.RelatedRecipeIDs,
		SourceURL:        m.Details.SourceURL,
		VideoURL:         m.Details.VideoURL,
	}
}
