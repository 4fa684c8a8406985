// Package handlers provides HTTP handlers for the recipe REST API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/http/middleware"
	"github.com/foodiee/recipes/internal/ports/inbound"
	apperrors "github.com/foodiee/recipes/pkg/errors"
)

// CollectionHandlers serves the recipe collection endpoints
type CollectionHandlers struct {
	service  inbound.CollectionService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCollectionHandlers creates a new handlers instance
func NewCollectionHandlers(service inbound.CollectionService, logger *zap.Logger) *CollectionHandlers {
	return &CollectionHandlers{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("collection-handlers"),
	}
}

// Routes mounts the endpoints under /api/recipes
func (h *CollectionHandlers) Routes(r chi.Router) {
	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Get("/suggest", h.Suggest)
		r.Get("/filters", h.Filters)
		r.Get("/favorites", h.Favorites)
		r.Get("/{id}", h.GetRecipe)
		r.Post("/{id}/favorite", h.SetFavorite(true))
		r.Delete("/{id}/favorite", h.SetFavorite(false))
	})
}

// collectionParams mirrors the query string of GET /api/recipes
type collectionParams struct {
	Search         string   `validate:"max=200"`
	Cuisine        string   `validate:"max=100"`
	MealTypes      []string `validate:"max=10,dive,max=50"`
	Dietary        []string `validate:"max=10,dive,max=50"`
	Difficulty     []string `validate:"max=3,dive,max=50"`
	MaxTimeMinutes int      `validate:"gte=0"`
	MinRating      float64  `validate:"gte=0,lte=5"`
	Page           int      `validate:"gte=0"`
	PageSize       int      `validate:"gte=0"`
}

// suggestParams mirrors the query string of GET /api/recipes/suggest
type suggestParams struct {
	Query string `validate:"max=200"`
	Limit int    `validate:"gte=0,lte=50"`
}

// FavoriteResponse acknowledges a favorite change
type FavoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// FavoritesResponse lists favorited recipe ids
type FavoritesResponse struct {
	IDs []string `json:"ids"`
}

// ListRecipes handles GET /api/recipes
func (h *CollectionHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query, appErr := h.parseQuery(r)
	if appErr != nil {
		h.writeError(w, r, appErr)
		return
	}

	result, err := h.service.FetchCollection(r.Context(), query)
	if err != nil {
		h.writeError(w, r, apperrors.Wrap(err, "Failed to load recipes"))
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *CollectionHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.FetchDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, apperrors.Wrap(err, "Failed to load recipe"))
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}

// SetFavorite handles POST and DELETE /api/recipes/{id}/favorite
func (h *CollectionHandlers) SetFavorite(favorite bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.service.ToggleFavorite(r.Context(), id, favorite); err != nil {
			h.writeError(w, r, apperrors.Wrap(err, "Failed to update favorite"))
			return
		}

		h.writeJSON(w, http.StatusOK, FavoriteResponse{ID: strings.TrimSpace(id), Favorite: favorite})
	}
}

// Suggest handles GET /api/recipes/suggest
func (h *CollectionHandlers) Suggest(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	params := suggestParams{Query: values.Get("query")}

	limit, err := intParam(values.Get("limit"), "limit")
	if err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError(err.Error()))
		return
	}
	params.Limit = limit

	if appErr := h.validateParams(params); appErr != nil {
		h.writeError(w, r, appErr)
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), params.Query, params.Limit)
	if err != nil {
		h.writeError(w, r, apperrors.Wrap(err, "Failed to load suggestions"))
		return
	}

	h.writeJSON(w, http.StatusOK, suggestions)
}

// Filters handles GET /api/recipes/filters
func (h *CollectionHandlers) Filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.AvailableFilters(r.Context())
	if err != nil {
		h.writeError(w, r, apperrors.Wrap(err, "Failed to load filter options"))
		return
	}

	h.writeJSON(w, http.StatusOK, opts)
}

// Favorites handles GET /api/recipes/favorites
func (h *CollectionHandlers) Favorites(w http.ResponseWriter, r *http.Request) {
	ids := h.service.Favorites(r.Context())
	if ids == nil {
		ids = []string{}
	}

	h.writeJSON(w, http.StatusOK, FavoritesResponse{IDs: ids})
}

// parseQuery decodes and validates the collection query string. Lists
// accept both repeated parameters and comma-joined values.
func (h *CollectionHandlers) parseQuery(r *http.Request) (recipe.Query, *apperrors.AppError) {
	values := r.URL.Query()
	params := collectionParams{
		Search:     strings.TrimSpace(values.Get("search")),
		Cuisine:    strings.TrimSpace(values.Get("cuisine")),
		MealTypes:  listParam(values["mealTypes"]),
		Dietary:    listParam(values["dietary"]),
		Difficulty: listParam(values["difficulty"]),
	}

	var err error
	if params.MaxTimeMinutes, err = intParam(values.Get("maxTimeMinutes"), "maxTimeMinutes"); err != nil {
		return recipe.Query{}, apperrors.NewBadRequestError(err.Error())
	}
	if params.Page, err = intParam(values.Get("page"), "page"); err != nil {
		return recipe.Query{}, apperrors.NewBadRequestError(err.Error())
	}
	if params.PageSize, err = intParam(values.Get("pageSize"), "pageSize"); err != nil {
		return recipe.Query{}, apperrors.NewBadRequestError(err.Error())
	}
	if raw := values.Get("minRating"); raw != "" {
		if params.MinRating, err = strconv.ParseFloat(raw, 64); err != nil {
			return recipe.Query{}, apperrors.NewBadRequestError("minRating must be a number")
		}
	}
	vegetarianOnly, err := boolParam(values.Get("vegetarianOnly"), "vegetarianOnly")
	if err != nil {
		return recipe.Query{}, apperrors.NewBadRequestError(err.Error())
	}
	favoritesOnly, err := boolParam(values.Get("favoritesOnly"), "favoritesOnly")
	if err != nil {
		return recipe.Query{}, apperrors.NewBadRequestError(err.Error())
	}

	if appErr := h.validateParams(params); appErr != nil {
		return recipe.Query{}, appErr
	}

	return recipe.Query{
		Search:         params.Search,
		Cuisine:        params.Cuisine,
		MealTypes:      convert[recipe.MealType](params.MealTypes),
		Dietary:        convert[recipe.DietaryTag](params.Dietary),
		Difficulty:     convert[recipe.Difficulty](params.Difficulty),
		MaxTimeMinutes: params.MaxTimeMinutes,
		MinRating:      params.MinRating,
		FavoritesOnly:  favoritesOnly,
		VegetarianOnly: vegetarianOnly,
		Sort:           recipe.SortKey(strings.TrimSpace(values.Get("sort"))),
		Page:           params.Page,
		PageSize:       params.PageSize,
	}, nil
}

func (h *CollectionHandlers) validateParams(params interface{}) *apperrors.AppError {
	err := h.validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	out := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return apperrors.NewValidationErrors(out)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func (h *CollectionHandlers) writeError(w http.ResponseWriter, r *http.Request, err *apperrors.AppError) {
	if err.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("code", string(err.Code)),
			zap.Error(err),
		)
	}
	middleware.WriteError(w, r, err)
}

// writeJSON writes a JSON response
func (h *CollectionHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func listParam(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func boolParam(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return b, nil
}

func convert[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
