package collection

import (
	"context"
	"errors"
	"time"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// Call outcomes reported to the Recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

// Remote answers operations through the backend API. It is disabled while
// the mode source asks for mock data.
type Remote struct {
	api      outbound.RemoteRecipeAPI
	mode     outbound.ModeSource
	recorder outbound.Recorder
}

// NewRemote creates the remote strategy. A nil mode source means remote
// calls are always attempted.
func NewRemote(api outbound.RemoteRecipeAPI, mode outbound.ModeSource, recorder outbound.Recorder) *Remote {
	if mode == nil {
		mode = outbound.StaticMode(false)
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Remote{api: api, mode: mode, recorder: recorder}
}

func (r *Remote) Name() string { return "remote" }

func (r *Remote) Enabled() bool { return r.api != nil && !r.mode.UseMocks() }

func (r *Remote) Collection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error) {
	return observe(r, "collection", func() (*recipe.CollectionResult, error) {
		return r.api.Collection(ctx, query.Normalized())
	})
}

func (r *Remote) Detail(ctx context.Context, id string) (*recipe.Detail, error) {
	return observe(r, "detail", func() (*recipe.Detail, error) {
		return r.api.Detail(ctx, id)
	})
}

func (r *Remote) Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error) {
	return observe(r, "suggest", func() ([]recipe.Suggestion, error) {
		return r.api.Suggest(ctx, term, limit)
	})
}

func (r *Remote) Filters(ctx context.Context) (*recipe.FilterOptions, error) {
	return observe(r, "filters", func() (*recipe.FilterOptions, error) {
		return r.api.Filters(ctx)
	})
}

// SetFavorite pushes a favorite change to the backend.
func (r *Remote) SetFavorite(ctx context.Context, id string, favorite bool) error {
	_, err := observe(r, "favorite", func() (struct{}, error) {
		return struct{}{}, r.api.SetFavorite(ctx, id, favorite)
	})
	return err
}

func observe[T any](r *Remote, operation string, call func() (T, error)) (T, error) {
	start := time.Now()
	v, err := call()
	r.recorder.RemoteCall(operation, outcomeOf(err), time.Since(start))
	return v, err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, outbound.ErrCircuitOpen):
		return OutcomeSkipped
	case errors.Is(err, outbound.ErrRemoteNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// NopRecorder discards all signals.
type NopRecorder struct{}

func (NopRecorder) RemoteCall(string, string, time.Duration) {}
func (NopRecorder) RemoteFallback(string)                    {}
func (NopRecorder) FavoriteSync(string)                      {}
