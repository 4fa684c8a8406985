package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmptyID        = errors.New("recipe id is required")
)
