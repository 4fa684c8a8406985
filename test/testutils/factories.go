// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

var (
	cuisines = []string{"Japanese", "Italian", "Mexican", "Indian", "Thai", "French"}
	tags     = []string{"comfort", "quick", "spicy", "one-pot", "summer", "weeknight", "grill"}
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
	epoch time.Time
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
		epoch: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Summary creates a random catalog entry with a sequence-based id
func (rf *RecipeFactory) Summary(seq int) recipe.Summary {
	prep := rf.faker.Number(5, 30)
	cook := rf.faker.Number(0, 90)
	title := fmt.Sprintf("%s %s", rf.faker.Adjective(), rf.faker.Dinner())

	dietary := []recipe.DietaryTag{}
	for _, d := range recipe.DietaryTags {
		if rf.faker.Bool() && rf.faker.Bool() {
			dietary = append(dietary, d)
		}
	}

	created := rf.epoch.Add(time.Duration(rf.faker.Number(0, 24*365)) * time.Hour)

	return recipe.Summary{
		ID:               fmt.Sprintf("recipe-%03d", seq),
		Slug:             fmt.Sprintf("recipe-%03d", seq),
		Title:            title,
		Description:      rf.faker.Sentence(10),
		Cuisine:          rf.faker.RandomString(cuisines),
		MealType:         recipe.MealTypes[rf.faker.Number(0, len(recipe.MealTypes)-1)],
		Difficulty:       recipe.Difficulties[rf.faker.Number(0, len(recipe.Difficulties)-1)],
		Tags:             []string{rf.faker.RandomString(tags), rf.faker.RandomString(tags)},
		Dietary:          dietary,
		TotalTimeMinutes: prep + cook,
		PrepTimeMinutes:  prep,
		CookTimeMinutes:  cook,
		Servings:         rf.faker.Number(1, 8),
		Rating:           float64(rf.faker.Number(30, 50)) / 10,
		RatingCount:      rf.faker.Number(0, 2000),
		Trending:         rf.faker.Number(0, 4) == 0,
		Image:            rf.faker.URL(),
		CreatedAt:        created.Format(time.RFC3339),
		UpdatedAt:        created.Add(48 * time.Hour).Format(time.RFC3339),
	}
}

// Catalog creates n random catalog entries with ids recipe-001..recipe-n
func (rf *RecipeFactory) Catalog(n int) []recipe.Summary {
	out := make([]recipe.Summary, n)
	for i := range out {
		out[i] = rf.Summary(i + 1)
	}
	return out
}

// Detail wraps a summary with random ingredients and steps
func (rf *RecipeFactory) Detail(s recipe.Summary) recipe.Detail {
	ingredients := make([]recipe.Ingredient, rf.faker.Number(3, 8))
	for i := range ingredients {
		ingredients[i] = recipe.Ingredient{
			Name:   rf.faker.Vegetable(),
			Amount: fmt.Sprintf("%d %s", rf.faker.Number(1, 500), rf.faker.RandomString([]string{"g", "ml", "tbsp", "cup"})),
		}
	}

	steps := make([]recipe.Step, rf.faker.Number(2, 6))
	for i := range steps {
		steps[i] = recipe.Step{
			ID:              uuid.NewString(),
			Title:           fmt.Sprintf("Step %d", i+1),
			Instruction:     rf.faker.Sentence(12),
			DurationMinutes: rf.faker.Number(1, 20),
		}
	}

	return recipe.Detail{
		Summary:     s,
		Ingredients: ingredients,
		Steps:       steps,
		Equipment:   []string{"Knife", "Cutting board"},
		Nutrition: recipe.Nutrition{
			Calories: rf.faker.Number(150, 900),
			Protein:  float64(rf.faker.Number(2, 60)),
			Carbs:    float64(rf.faker.Number(5, 120)),
			Fat:      float64(rf.faker.Number(1, 50)),
		},
		Author: recipe.Author{Name: rf.faker.Name()},
	}
}

// SummaryBuilder provides a fluent interface for building test catalog entries
type SummaryBuilder struct {
	summary recipe.Summary
}

// NewSummaryBuilder creates a new builder with deterministic default values
func NewSummaryBuilder(id string) *SummaryBuilder {
	return &SummaryBuilder{
		summary: recipe.Summary{
			ID:               id,
			Slug:             id,
			Title:            "Test Recipe " + id,
			Description:      "A test recipe",
			Cuisine:          "Italian",
			MealType:         recipe.MealTypeDinner,
			Difficulty:       recipe.DifficultyMedium,
			Tags:             []string{},
			Dietary:          []recipe.DietaryTag{},
			TotalTimeMinutes: 30,
			PrepTimeMinutes:  10,
			CookTimeMinutes:  20,
			Servings:         4,
			Rating:           4.0,
			CreatedAt:        "2024-01-01T00:00:00Z",
			UpdatedAt:        "2024-01-01T00:00:00Z",
		},
	}
}

// WithTitle sets the recipe title
func (b *SummaryBuilder) WithTitle(title string) *SummaryBuilder {
	b.summary.Title = title
	return b
}

// WithDescription sets the recipe description
func (b *SummaryBuilder) WithDescription(description string) *SummaryBuilder {
	b.summary.Description = description
	return b
}

// WithCuisine sets the recipe cuisine
func (b *SummaryBuilder) WithCuisine(cuisine string) *SummaryBuilder {
	b.summary.Cuisine = cuisine
	return b
}

// WithMealType sets the meal type
func (b *SummaryBuilder) WithMealType(mealType recipe.MealType) *SummaryBuilder {
	b.summary.MealType = mealType
	return b
}

// WithDifficulty sets the recipe difficulty
func (b *SummaryBuilder) WithDifficulty(difficulty recipe.Difficulty) *SummaryBuilder {
	b.summary.Difficulty = difficulty
	return b
}

// WithTags sets the free-text tags
func (b *SummaryBuilder) WithTags(tags ...string) *SummaryBuilder {
	b.summary.Tags = tags
	return b
}

// WithDietary sets the dietary labels
func (b *SummaryBuilder) WithDietary(labels ...recipe.DietaryTag) *SummaryBuilder {
	b.summary.Dietary = labels
	return b
}

// WithTotalTime sets the total time in minutes
func (b *SummaryBuilder) WithTotalTime(minutes int) *SummaryBuilder {
	b.summary.TotalTimeMinutes = minutes
	return b
}

// WithRating sets rating and rating count
func (b *SummaryBuilder) WithRating(rating float64, count int) *SummaryBuilder {
	b.summary.Rating = rating
	b.summary.RatingCount = count
	return b
}

// Trending marks the recipe as trending
func (b *SummaryBuilder) Trending() *SummaryBuilder {
	b.summary.Trending = true
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *SummaryBuilder) WithCreatedAt(ts string) *SummaryBuilder {
	b.summary.CreatedAt = ts
	return b
}

// Build returns the built summary
func (b *SummaryBuilder) Build() recipe.Summary {
	return b.summary
}

// BuildDetail returns a minimal detail record for the built summary
func (b *SummaryBuilder) BuildDetail() recipe.Detail {
	return recipe.Detail{
		Summary: b.summary,
		Ingredients: []recipe.Ingredient{
			{Name: "Salt", Amount: "1 tsp"},
		},
		Steps: []recipe.Step{
			{ID: b.summary.ID + "-step-1", Title: "Cook", Instruction: "Cook everything."},
		},
		Author: recipe.Author{Name: "Test Kitchen"},
	}
}
