// Package client provides the HTTP client for the backend recipe API
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

const maxErrorBody = 4 << 10

// Options configures a RecipeClient
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RPS       float64
	Burst     int
	Breaker   BreakerConfig
	Transport http.RoundTripper
}

// RecipeClient handles communication with the backend recipe API
type RecipeClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *Breaker
	logger     *zap.Logger
}

var _ outbound.RemoteRecipeAPI = (*RecipeClient)(nil)

// NewRecipeClient creates a new API client instance
func NewRecipeClient(opts Options, logger *zap.Logger) *RecipeClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &RecipeClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter: rate.NewLimiter(limit, burst),
		breaker: NewBreaker(opts.Breaker),
		logger:  logger.Named("recipe-client"),
	}
}

// Breaker exposes the circuit breaker state for health reporting
func (c *RecipeClient) Breaker() *Breaker {
	return c.breaker
}

// Collection fetches one page of recipes
func (c *RecipeClient) Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error) {
	var result recipe.CollectionResult
	if err := c.get(ctx, "/api/recipes", EncodeQuery(query), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Detail fetches a single recipe
func (c *RecipeClient) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	var detail recipe.Detail
	if err := c.get(ctx, "/api/recipes/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SetFavorite marks or unmarks a recipe as favorite
func (c *RecipeClient) SetFavorite(ctx context.Context, id string, favorite bool) error {
	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}
	return c.doRequest(ctx, method, "/api/recipes/"+url.PathEscape(id)+"/favorite", nil, nil)
}

// Suggest fetches title suggestions
func (c *RecipeClient) Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error) {
	params := url.Values{}
	params.Set("query", term)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var suggestions []recipe.Suggestion
	if err := c.get(ctx, "/api/recipes/suggest", params, &suggestions); err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []recipe.Suggestion{}
	}
	return suggestions, nil
}

// Filters fetches the available filter values
func (c *RecipeClient) Filters(ctx context.Context) (*recipe.FilterOptions, error) {
	var opts recipe.FilterOptions
	if err := c.get(ctx, "/api/recipes/filters", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// get performs a GET request
func (c *RecipeClient) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, params, result)
}

// doRequest performs the HTTP request, feeding the breaker and decoding JSON
func (c *RecipeClient) doRequest(ctx context.Context, method, path string, params url.Values, result interface{}) error {
	endpoint := method + " " + path

	if !c.breaker.Allow() {
		return &RemoteError{Endpoint: endpoint, Cause: outbound.ErrCircuitOpen}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &RemoteError{Endpoint: endpoint, Cause: err}
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.Failure()
		return &RemoteError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("API request completed",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode >= 500 {
			c.breaker.Failure()
		} else {
			c.breaker.Success()
		}
		return &RemoteError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
			c.breaker.Failure()
			return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode, Cause: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	c.breaker.Success()
	return nil
}

// EncodeQuery renders a collection query as URL parameters. List filters
// are comma-joined and zero-valued filters are omitted.
func EncodeQuery(q recipe.Query) url.Values {
	params := url.Values{}
	setIf := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}

	setIf("search", q.Search)
	setIf("cuisine", q.Cuisine)
	setIf("mealTypes", joinValues(q.MealTypes))
	setIf("dietary", joinValues(q.Dietary))
	setIf("difficulty", joinValues(q.Difficulty))
	if q.MaxTimeMinutes > 0 {
		params.Set("maxTimeMinutes", strconv.Itoa(q.MaxTimeMinutes))
	}
	if q.MinRating > 0 {
		params.Set("minRating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	setIf("sort", string(q.Sort))
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.VegetarianOnly {
		params.Set("vegetarianOnly", "true")
	}
	if q.FavoritesOnly {
		params.Set("favoritesOnly", "true")
	}
	return params
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
