package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/inbound"
)

var errMissingID = errors.New("a recipe id argument is required")

func browseCmd() *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"ls"},
		Usage:   "List a filtered, sorted page of the recipe library",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Text to match against title, description, cuisine and tags"},
			&cli.StringFlag{Name: "cuisine", Usage: "Cuisine to match, case-insensitive"},
			&cli.StringSliceFlag{
				Name:  "meal",
				Usage: fmt.Sprintf("Meal types to include, repeatable (supported values: %s)", join(recipe.MealTypes)),
			},
			&cli.StringSliceFlag{
				Name:  "dietary",
				Usage: fmt.Sprintf("Dietary labels every result must carry, repeatable (supported values: %s)", join(recipe.DietaryTags)),
			},
			&cli.StringSliceFlag{
				Name:  "difficulty",
				Usage: fmt.Sprintf("Difficulty levels to include, repeatable (supported values: %s)", join(recipe.Difficulties)),
			},
			&cli.IntFlag{Name: "max-time", Usage: "Maximum total time in minutes"},
			&cli.FloatFlag{Name: "min-rating", Usage: "Minimum rating between 0 and 5"},
			&cli.BoolFlag{Name: "favorites-only", Usage: "Only list favorited recipes"},
			&cli.BoolFlag{Name: "vegetarian", Usage: "Only list vegetarian or vegan recipes"},
			&cli.StringFlag{
				Name:  "sort",
				Value: string(recipe.SortRelevance),
				Usage: "Sort order (relevance, rating, time, new, difficulty, favorites)",
			},
			&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number, starting at 1"},
			&cli.IntFlag{Name: "page-size", Value: recipe.DefaultPageSize, Usage: "Recipes per page"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			q := buildQueryFromCmd(cmd)
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				result, err := s.FetchCollection(ctx, q)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}
}

// buildQueryFromCmd constructs a recipe.Query from the browse flags.
func buildQueryFromCmd(cmd *cli.Command) recipe.Query {
	return recipe.Query{
		Search:         cmd.String("search"),
		Cuisine:        cmd.String("cuisine"),
		MealTypes:      convert[recipe.MealType](cmd.StringSlice("meal")),
		Dietary:        convert[recipe.DietaryTag](cmd.StringSlice("dietary")),
		Difficulty:     convert[recipe.Difficulty](cmd.StringSlice("difficulty")),
		MaxTimeMinutes: int(cmd.Int("max-time")),
		MinRating:      cmd.Float("min-rating"),
		FavoritesOnly:  cmd.Bool("favorites-only"),
		VegetarianOnly: cmd.Bool("vegetarian"),
		Sort:           recipe.SortKey(cmd.String("sort")),
		Page:           int(cmd.Int("page")),
		PageSize:       int(cmd.Int("page-size")),
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a full recipe with ingredients and steps",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := strings.TrimSpace(cmd.Args().First())
			if id == "" {
				return errMissingID
			}
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				detail, err := s.FetchDetail(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, detail)
			})
		},
	}
}

type favoriteResult struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func favoriteCmd() *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Mark a recipe as a favorite, or clear it with --off",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "off", Usage: "Remove the recipe from favorites"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := strings.TrimSpace(cmd.Args().First())
			if id == "" {
				return errMissingID
			}
			favorite := !cmd.Bool("off")
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				if err := s.ToggleFavorite(ctx, id, favorite); err != nil {
					return err
				}
				return printJSON(cmd, favoriteResult{ID: id, Favorite: favorite})
			})
		},
	}
}

func favoritesCmd() *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "List favorited recipe ids in the order they were added",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				ids := s.Favorites(ctx)
				if ids == nil {
					ids = []string{}
				}
				return printJSON(cmd, ids)
			})
		},
	}
}

func suggestCmd() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest recipe titles matching a partial term",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: recipe.DefaultSuggestionLimit, Usage: "Maximum number of suggestions"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			term := strings.Join(cmd.Args().Slice(), " ")
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				out, err := s.Suggest(ctx, term, int(cmd.Int("limit")))
				if err != nil {
					return err
				}
				if out == nil {
					out = []recipe.Suggestion{}
				}
				return printJSON(cmd, out)
			})
		},
	}
}

func filtersCmd() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "List the values available for each filter",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withService(ctx, cmd, func(ctx context.Context, s inbound.CollectionService) error {
				opts, err := s.AvailableFilters(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, opts)
			})
		},
	}
}

func convert[T ~string](values []string) []T {
	var out []T
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, T(part))
			}
		}
	}
	return out
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
