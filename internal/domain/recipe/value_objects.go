package recipe

// Value Objects - Immutable objects that describe aspects of a recipe

// Ingredient is one line of the ingredient list
type Ingredient struct {
	Name     string `json:"name" yaml:"name"`
	Amount   string `json:"amount" yaml:"amount"`
	Note     string `json:"note,omitempty" yaml:"note"`
	Optional bool   `json:"optional,omitempty" yaml:"optional"`
	Group    string `json:"group,omitempty" yaml:"group"`
}

// Step is a single cooking instruction
type Step struct {
	ID              string `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Instruction     string `json:"instruction" yaml:"instruction"`
	DurationMinutes int    `json:"durationMinutes,omitempty" yaml:"durationMinutes"`
	Tip             string `json:"tip,omitempty" yaml:"tip"`
	Media           string `json:"media,omitempty" yaml:"media"`
}

// Nutrition contains per-serving nutritional information
type Nutrition struct {
	Calories int      `json:"calories" yaml:"calories"`
	Protein  float64  `json:"protein" yaml:"protein"` // in grams
	Carbs    float64  `json:"carbs" yaml:"carbs"`     // in grams
	Fat      float64  `json:"fat" yaml:"fat"`         // in grams
	Fiber    *float64 `json:"fiber,omitempty" yaml:"fiber"`
	Sugar    *float64 `json:"sugar,omitempty" yaml:"sugar"`
	Sodium   *float64 `json:"sodium,omitempty" yaml:"sodium"` // in milligrams
}

// Author credits the recipe creator
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
	Title  string `json:"title,omitempty" yaml:"title"`
}

// Difficulty represents recipe difficulty
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the known levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Rank orders difficulties Easy < Medium < Hard; unknown values sort last.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 3
	}
}

// MealType represents when a dish is typically eaten
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
	MealTypeDessert   MealType = "Dessert"
)

// MealTypes lists the known meal types.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeDessert}

// DietaryTag represents a dietary label
type DietaryTag string

const (
	DietaryVegetarian  DietaryTag = "Vegetarian"
	DietaryVegan       DietaryTag = "Vegan"
	DietaryGlutenFree  DietaryTag = "Gluten-Free"
	DietaryDairyFree   DietaryTag = "Dairy-Free"
	DietaryNutFree     DietaryTag = "Nut-Free"
	DietaryPescatarian DietaryTag = "Pescatarian"
	DietaryHighProtein DietaryTag = "High-Protein"
)

// DietaryTags lists the known dietary labels.
var DietaryTags = []DietaryTag{
	DietaryVegetarian,
	DietaryVegan,
	DietaryGlutenFree,
	DietaryDairyFree,
	DietaryNutFree,
	DietaryPescatarian,
	DietaryHighProtein,
}
