// Package gorm provides GORM model definitions and repositories for the
// SQL storage drivers
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

// RecipeModel represents the GORM model for catalog entries. Position keeps
// the catalog order stable across reloads.
type RecipeModel struct {
	ID          string `gorm:"type:varchar(128);primaryKey"`
	Position    int    `gorm:"not null;index"`
	Slug        string `gorm:"type:varchar(255)"`
	Title       string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`

	// Categorization
	Cuisine    string      `gorm:"type:varchar(64);index"`
	MealType   string      `gorm:"type:varchar(32);index"`
	Difficulty string      `gorm:"type:varchar(16);index"`
	Tags       StringSlice `gorm:"type:json"`
	Dietary    StringSlice `gorm:"type:json"`

	// Timing (stored in minutes)
	TotalTimeMinutes int `gorm:"column:total_time_minutes;default:0"`
	PrepTimeMinutes  int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes  int `gorm:"column:cook_time_minutes;default:0"`
	Servings         int `gorm:"default:0"`

	// Social
	Rating      float64 `gorm:"column:rating;default:0;index"`
	RatingCount int     `gorm:"column:rating_count;default:0"`
	Trending    bool    `gorm:"default:false"`

	Image       string `gorm:"type:text"`
	PublishedAt string `gorm:"type:varchar(40)"`
	RevisedAt   string `gorm:"type:varchar(40)"`

	// Everything the step reader needs
	Details DetailDocument `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// KeyValueModel stores opaque values such as the favorite set
type KeyValueModel struct {
	Key       string `gorm:"column:kv_key;type:varchar(255);primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides
func (RecipeModel) TableName() string {
	return "recipes"
}

func (KeyValueModel) TableName() string {
	return "key_values"
}

// Migrate creates or updates the tables used by the SQL drivers
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RecipeModel{}, &KeyValueModel{})
}

// DetailDocument is the JSON column holding the detail-only fields
type DetailDocument struct {
	Ingredients      []recipe.Ingredient `json:"ingredients"`
	Steps            []recipe.Step       `json:"steps"`
	Equipment        []string            `json:"equipment"`
	Nutrition        recipe.Nutrition    `json:"nutrition"`
	Author           recipe.Author       `json:"author"`
	RelatedRecipeIDs []string            `json:"relatedRecipeIds"`
	SourceURL        string              `json:"sourceUrl,omitempty"`
	VideoURL         string              `json:"videoUrl,omitempty"`
}

// Scan implements the sql.Scanner interface
func (d *DetailDocument) Scan(value interface{}) error {
	if value == nil {
		*d = DetailDocument{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into DetailDocument", value)
	}
}

// Value implements the driver.Valuer interface
func (d DetailDocument) Value() (driver.Value, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
