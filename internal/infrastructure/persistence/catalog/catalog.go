// Package catalog loads the recipe catalog used when the backend API is
// unavailable or disabled. A default catalog is embedded in the binary and
// can be replaced with a YAML file of the same shape.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/foodiee/recipes/internal/domain/recipe"
)

//go:embed seed.yaml
var embeddedSeed []byte

type seedFile struct {
	Recipes []recipe.Detail `yaml:"recipes"`
}

// Default returns the embedded catalog
func Default() ([]recipe.Detail, error) {
	return Parse(embeddedSeed)
}

// Load reads a catalog from path, or the embedded catalog when path is empty
func Load(path string) ([]recipe.Detail, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Every recipe needs a unique non-empty id;
// a missing slug defaults to the id.
func Parse(data []byte) ([]recipe.Detail, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(seed.Recipes))
	for i := range seed.Recipes {
		r := &seed.Recipes[i]
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Slug == "" {
			r.Slug = r.ID
		}
		r.Favorite = false
	}
	return seed.Recipes, nil
}

// Summaries projects details onto their catalog entries, preserving order
func Summaries(details []recipe.Detail) []recipe.Summary {
	out := make([]recipe.Summary, len(details))
	for i, d := range details {
		out[i] = d.Summary
	}
	return out
}
