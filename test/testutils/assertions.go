// Package testutils provides custom assertion helpers for testing
package testutils

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiee/recipes/internal/domain/recipe"
	apperrors "github.com/foodiee/recipes/pkg/errors"
)

// CollectionAssertions provides collection-specific assertion methods
type CollectionAssertions struct {
	t *testing.T
}

// NewCollectionAssertions creates a new collection assertions helper
func NewCollectionAssertions(t *testing.T) *CollectionAssertions {
	return &CollectionAssertions{t: t}
}

// IDs returns the ids of items in order
func IDs(items []recipe.Summary) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// ItemIDs asserts the page contains exactly these ids in order
func (ca *CollectionAssertions) ItemIDs(result *recipe.CollectionResult, expected []string, msgAndArgs ...interface{}) {
	require.NotNil(ca.t, result, "Result should not be nil")
	assert.Equal(ca.t, expected, IDs(result.Items), msgAndArgs...)
}

// Page asserts the pagination fields of a result
func (ca *CollectionAssertions) Page(result *recipe.CollectionResult, total, page, pageSize int, hasMore bool) {
	require.NotNil(ca.t, result, "Result should not be nil")
	assert.Equal(ca.t, total, result.Total, "total")
	assert.Equal(ca.t, page, result.Page, "page")
	assert.Equal(ca.t, pageSize, result.PageSize, "pageSize")
	assert.Equal(ca.t, hasMore, result.HasMore, "hasMore")
}

// Facet asserts the count and selection of one facet value
func (ca *CollectionAssertions) Facet(entries []recipe.FacetEntry, value string, count int, selected bool) {
	for _, e := range entries {
		if e.Value == value {
			assert.Equal(ca.t, count, e.Count, "facet %s count", value)
			assert.Equal(ca.t, selected, e.Selected, "facet %s selected", value)
			return
		}
	}
	ca.t.Errorf("facet value %q not present", value)
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(resp *http.Response, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, resp.StatusCode, msgAndArgs...)
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(resp *http.Response, target interface{}) {
	require.NotNil(ha.t, resp, "Response should not be nil")

	contentType := resp.Header.Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	err := json.NewDecoder(resp.Body).Decode(target)
	require.NoError(ha.t, err, "Response should be valid JSON")
}

// ErrorCode asserts that the response carries an error envelope with code
func (ha *HTTPAssertions) ErrorCode(resp *http.Response, expected apperrors.ErrorCode) {
	var body apperrors.ErrorResponse
	ha.JSONResponse(resp, &body)
	assert.Equal(ha.t, expected, body.Error.Code)
}

// HasHeader asserts that a header exists
func (ha *HTTPAssertions) HasHeader(resp *http.Response, headerName string) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.NotEmpty(ha.t, resp.Header.Get(headerName), "Response should have header %s", headerName)
}
