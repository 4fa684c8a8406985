package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/foodiee/recipes/internal/application/collection"
	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/http/middleware"
	"github.com/foodiee/recipes/internal/infrastructure/persistence/memory"
	apperrors "github.com/foodiee/recipes/pkg/errors"
	"github.com/foodiee/recipes/test/testutils"
)

type CollectionHandlersTestSuite struct {
	suite.Suite
	server  *httptest.Server
	service *collection.Service
	http    *testutils.HTTPAssertions
}

func (suite *CollectionHandlersTestSuite) SetupSubTest() {
	logger := zaptest.NewLogger(suite.T())

	catalog := testutils.NewMockCatalog([]recipe.Summary{
		testutils.NewSummaryBuilder("ramen").WithTitle("Umami Miso Ramen").WithCuisine("Japanese").
			WithDietary(recipe.DietaryVegetarian).WithTotalTime(40).Build(),
		testutils.NewSummaryBuilder("pasta").WithTitle("Tomato Pasta").WithRating(4.8, 120).
			WithTotalTime(25).Build(),
		testutils.NewSummaryBuilder("salad").WithTitle("Garden Salad").WithMealType(recipe.MealTypeLunch).
			WithDifficulty(recipe.DifficultyEasy).WithTotalTime(10).Build(),
	})
	favorites := collection.NewFavorites(memory.NewKeyValueStore(), collection.DefaultFavoritesKey, logger)
	suite.service = collection.NewService(collection.NewLocal(catalog, favorites), nil, favorites, nil, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	NewCollectionHandlers(suite.service, logger).Routes(r)
	suite.server = httptest.NewServer(r)
	suite.http = testutils.NewHTTPAssertions(suite.T())
}

func (suite *CollectionHandlersTestSuite) TearDownSubTest() {
	suite.server.Close()
}

func (suite *CollectionHandlersTestSuite) do(method, path string) *http.Response {
	req, err := http.NewRequestWithContext(context.Background(), method, suite.server.URL+path, nil)
	require.NoError(suite.T(), err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(suite.T(), err)
	suite.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (suite *CollectionHandlersTestSuite) TestListRecipes() {
	suite.Run("NoParams_ShouldReturnFirstPage", func() {
		// Act
		resp := suite.do(http.MethodGet, "/api/recipes")

		// Assert
		suite.http.StatusCode(resp, http.StatusOK)
		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Equal(suite.T(), 3, result.Total)
		assert.Equal(suite.T(), 1, result.Page)
		assert.Equal(suite.T(), recipe.DefaultPageSize, result.PageSize)
		assert.Equal(suite.T(), []string{"ramen", "pasta", "salad"}, testutils.IDs(result.Items))
	})

	suite.Run("SortAndPaging_ShouldBeApplied", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?sort=time&page=1&pageSize=2")

		suite.http.StatusCode(resp, http.StatusOK)
		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Equal(suite.T(), []string{"salad", "pasta"}, testutils.IDs(result.Items))
		assert.True(suite.T(), result.HasMore)
	})

	suite.Run("CommaAndRepeatedLists_ShouldBothParse", func() {
		params := url.Values{}
		params.Add("mealTypes", "Dinner,Breakfast")
		params.Add("mealTypes", "Snack")
		params.Set("vegetarianOnly", "true")

		resp := suite.do(http.MethodGet, "/api/recipes?"+params.Encode())

		suite.http.StatusCode(resp, http.StatusOK)
		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Equal(suite.T(), []string{"ramen"}, testutils.IDs(result.Items))
	})

	suite.Run("SearchIsCaseInsensitive", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?search=RAMEN")

		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Equal(suite.T(), []string{"ramen"}, testutils.IDs(result.Items))
	})

	suite.Run("MalformedNumber_ShouldReturnBadRequest", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?page=two")

		suite.http.StatusCode(resp, http.StatusBadRequest)
		suite.http.ErrorCode(resp, apperrors.CodeBadRequest)
	})

	suite.Run("OutOfRangeRating_ShouldFailValidation", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?minRating=7")

		suite.http.StatusCode(resp, http.StatusBadRequest)
		suite.http.ErrorCode(resp, apperrors.CodeValidationFailed)
	})

	suite.Run("HugePage_ShouldReturnEmptyPage", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?page=2305843009213693954&pageSize=100")

		suite.http.StatusCode(resp, http.StatusOK)
		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Empty(suite.T(), result.Items)
		assert.Equal(suite.T(), 3, result.Total)
		assert.False(suite.T(), result.HasMore)
	})

	suite.Run("UnknownSort_ShouldFallBackToRelevance", func() {
		resp := suite.do(http.MethodGet, "/api/recipes?sort=spiciness")

		suite.http.StatusCode(resp, http.StatusOK)
		var result recipe.CollectionResult
		suite.http.JSONResponse(resp, &result)
		assert.Equal(suite.T(), []string{"ramen", "pasta", "salad"}, testutils.IDs(result.Items))
	})
}

func (suite *CollectionHandlersTestSuite) TestGetRecipe() {
	suite.Run("Existing_ShouldReturnDetail", func() {
		resp := suite.do(http.MethodGet, "/api/recipes/pasta")

		suite.http.StatusCode(resp, http.StatusOK)
		var detail recipe.Detail
		suite.http.JSONResponse(resp, &detail)
		assert.Equal(suite.T(), "Tomato Pasta", detail.Title)
		assert.False(suite.T(), detail.Favorite)
	})

	suite.Run("Missing_ShouldReturnRecipeNotFound", func() {
		resp := suite.do(http.MethodGet, "/api/recipes/nonexistent-id")

		suite.http.StatusCode(resp, http.StatusNotFound)
		suite.http.HasHeader(resp, middleware.RequestIDHeader)
		suite.http.ErrorCode(resp, apperrors.CodeRecipeNotFound)
	})
}

func (suite *CollectionHandlersTestSuite) TestFavorites() {
	suite.Run("PostThenDelete_ShouldRoundTrip", func() {
		// Act
		resp := suite.do(http.MethodPost, "/api/recipes/ramen/favorite")

		// Assert
		suite.http.StatusCode(resp, http.StatusOK)
		var ack FavoriteResponse
		suite.http.JSONResponse(resp, &ack)
		assert.Equal(suite.T(), FavoriteResponse{ID: "ramen", Favorite: true}, ack)

		var detail recipe.Detail
		suite.http.JSONResponse(suite.do(http.MethodGet, "/api/recipes/ramen"), &detail)
		assert.True(suite.T(), detail.Favorite)

		var list FavoritesResponse
		suite.http.JSONResponse(suite.do(http.MethodGet, "/api/recipes/favorites"), &list)
		assert.Equal(suite.T(), []string{"ramen"}, list.IDs)

		suite.http.StatusCode(suite.do(http.MethodDelete, "/api/recipes/ramen/favorite"), http.StatusOK)
		suite.http.JSONResponse(suite.do(http.MethodGet, "/api/recipes/ramen"), &detail)
		assert.False(suite.T(), detail.Favorite)
	})

	suite.Run("FavoritesOnly_ShouldFilterCollection", func() {
		suite.do(http.MethodPost, "/api/recipes/salad/favorite")

		var result recipe.CollectionResult
		suite.http.JSONResponse(suite.do(http.MethodGet, "/api/recipes?favoritesOnly=true"), &result)

		assert.Equal(suite.T(), []string{"salad"}, testutils.IDs(result.Items))
	})

	suite.Run("EmptyList_ShouldEncodeAsArray", func() {
		var list FavoritesResponse
		suite.http.JSONResponse(suite.do(http.MethodGet, "/api/recipes/favorites"), &list)

		assert.NotNil(suite.T(), list.IDs)
		assert.Empty(suite.T(), list.IDs)
	})
}

func (suite *CollectionHandlersTestSuite) TestSuggestAndFilters() {
	suite.Run("Suggest_ShouldMatchTitles", func() {
		resp := suite.do(http.MethodGet, "/api/recipes/suggest?query=sal&limit=3")

		suite.http.StatusCode(resp, http.StatusOK)
		var suggestions []recipe.Suggestion
		suite.http.JSONResponse(resp, &suggestions)
		require.Len(suite.T(), suggestions, 1)
		assert.Equal(suite.T(), "salad", suggestions[0].ID)
	})

	suite.Run("SuggestLimitTooLarge_ShouldFailValidation", func() {
		resp := suite.do(http.MethodGet, "/api/recipes/suggest?query=a&limit=500")

		suite.http.ErrorCode(resp, apperrors.CodeValidationFailed)
	})

	suite.Run("Filters_ShouldListCatalogValues", func() {
		resp := suite.do(http.MethodGet, "/api/recipes/filters")

		suite.http.StatusCode(resp, http.StatusOK)
		var opts recipe.FilterOptions
		suite.http.JSONResponse(resp, &opts)
		assert.ElementsMatch(suite.T(), []string{"Japanese", "Italian"}, opts.Cuisines)
		assert.Contains(suite.T(), opts.MealTypes, "Lunch")
	})
}

func TestCollectionHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionHandlersTestSuite))
}
