package collection

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/ports/inbound"
	"github.com/foodiee/recipes/internal/ports/outbound"
	apperrors "github.com/foodiee/recipes/pkg/errors"
)

// DefaultSyncTimeout bounds a background favorite sync.
const DefaultSyncTimeout = 5 * time.Second

// Service implements inbound.CollectionService. Reads go through the
// strategy chain (remote, then local); favorites are written locally and
// synced to the remote in the background.
type Service struct {
	remote    *Remote
	local     *Local
	chain     []Strategy
	favorites *Favorites
	recorder  outbound.Recorder
	logger    *zap.Logger
	tracer    trace.Tracer

	syncTimeout time.Duration
	syncs       sync.WaitGroup
}

var _ inbound.CollectionService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithSyncTimeout overrides DefaultSyncTimeout.
func WithSyncTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.syncTimeout = d
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// NewService creates the collection service. remote may be nil, in which
// case every operation is answered locally.
func NewService(
	local *Local,
	remote *Remote,
	favorites *Favorites,
	recorder outbound.Recorder,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		remote:      remote,
		local:       local,
		favorites:   favorites,
		recorder:    recorder,
		logger:      logger.Named("collection-service"),
		tracer:      otel.Tracer("github.com/foodiee/recipes/collection"),
		syncTimeout: DefaultSyncTimeout,
	}
	if remote != nil {
		s.chain = append(s.chain, remote)
	}
	s.chain = append(s.chain, local)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCollection returns one page of the filtered, sorted catalog.
func (s *Service) FetchCollection(ctx context.Context, query recipe.Query) (*recipe.CollectionResult, error) {
	ctx, span := s.tracer.Start(ctx, "collection.FetchCollection", trace.WithAttributes(
		attribute.String("query.search", query.Search),
		attribute.String("query.sort", string(query.Sort)),
		attribute.Int("query.page", query.Page),
	))
	defer span.End()

	result, err := attempt(ctx, s, "collection", func(st Strategy) (*recipe.CollectionResult, error) {
		return st.Collection(ctx, query)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, apperrors.Wrap(err, "Failed to load recipe collection")
	}
	span.SetAttributes(attribute.Int("result.total", result.Total))

	// the local set is authoritative for this device, whichever source answered
	isFavorite := s.favorites.Lookup(ctx)
	for i := range result.Items {
		result.Items[i].Favorite = isFavorite(result.Items[i].ID)
	}
	return result, nil
}

// FetchDetail returns a full recipe with its favorite flag from the local
// set. When neither source has the recipe the local not-found is reported.
func (s *Service) FetchDetail(ctx context.Context, id string) (*recipe.Detail, error) {
	ctx, span := s.tracer.Start(ctx, "collection.FetchDetail", trace.WithAttributes(
		attribute.String("recipe.id", id),
	))
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewBadRequestError("Recipe id is required").WithCause(recipe.ErrEmptyID)
	}

	detail, err := attempt(ctx, s, "detail", func(st Strategy) (*recipe.Detail, error) {
		return st.Detail(ctx, id)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(id).WithCause(err)
		}
		return nil, apperrors.Wrap(err, "Failed to load recipe")
	}

	detail.Favorite = s.favorites.Contains(ctx, detail.ID)
	return detail, nil
}

// Suggest returns title matches for term. An empty term yields no
// suggestions without consulting any source.
func (s *Service) Suggest(ctx context.Context, term string, limit int) ([]recipe.Suggestion, error) {
	if strings.TrimSpace(term) == "" {
		return []recipe.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = recipe.DefaultSuggestionLimit
	}

	ctx, span := s.tracer.Start(ctx, "collection.Suggest", trace.WithAttributes(
		attribute.String("suggest.term", term),
		attribute.Int("suggest.limit", limit),
	))
	defer span.End()

	suggestions, err := attempt(ctx, s, "suggest", func(st Strategy) ([]recipe.Suggestion, error) {
		return st.Suggest(ctx, term, limit)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, apperrors.Wrap(err, "Failed to load suggestions")
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// AvailableFilters lists the distinct values for each filter dimension.
func (s *Service) AvailableFilters(ctx context.Context) (*recipe.FilterOptions, error) {
	ctx, span := s.tracer.Start(ctx, "collection.AvailableFilters")
	defer span.End()

	opts, err := attempt(ctx, s, "filters", func(st Strategy) (*recipe.FilterOptions, error) {
		return st.Filters(ctx)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, apperrors.Wrap(err, "Failed to load filter options")
	}
	return opts, nil
}

// ToggleFavorite updates the local favorite set and returns without waiting
// on the network. The remote sync runs in the background and its failure
// is only logged.
func (s *Service) ToggleFavorite(ctx context.Context, id string, favorite bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NewBadRequestError("Recipe id is required").WithCause(recipe.ErrEmptyID)
	}

	changed := s.favorites.Set(ctx, id, favorite)
	s.logger.Debug("Favorite updated",
		zap.String("recipe_id", id),
		zap.Bool("favorite", favorite),
		zap.Bool("changed", changed),
	)

	if s.remote == nil || !s.remote.Enabled() {
		return nil
	}

	s.syncs.Add(1)
	go s.syncFavorite(trace.SpanContextFromContext(ctx), id, favorite)
	return nil
}

// Favorites returns the favorited ids in insertion order.
func (s *Service) Favorites(ctx context.Context) []string {
	return s.favorites.IDs(ctx)
}

// Flush waits for in-flight favorite syncs or until ctx is done.
func (s *Service) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.syncs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) syncFavorite(parent trace.SpanContext, id string, favorite bool) {
	defer s.syncs.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "collection.SyncFavorite", trace.WithLinks(trace.Link{SpanContext: parent}))
	defer span.End()

	if err := s.remote.SetFavorite(ctx, id, favorite); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.recorder.FavoriteSync(OutcomeError)
		s.logger.Warn("Favorite sync failed",
			zap.String("recipe_id", id),
			zap.Bool("favorite", favorite),
			zap.Error(err),
		)
		return
	}
	s.recorder.FavoriteSync(OutcomeSuccess)
}

// attempt runs call against each enabled strategy until one succeeds and
// returns the last error otherwise.
func attempt[T any](ctx context.Context, s *Service, operation string, call func(Strategy) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for i, st := range s.chain {
		if !st.Enabled() {
			continue
		}

		v, err := call(st)
		if err == nil {
			if i > 0 && lastErr != nil {
				trace.SpanFromContext(ctx).SetAttributes(attribute.String("collection.source", st.Name()))
			}
			return v, nil
		}
		lastErr = err

		if i == len(s.chain)-1 {
			break
		}

		s.recorder.RemoteFallback(operation)
		fields := []zap.Field{
			zap.String("operation", operation),
			zap.String("source", st.Name()),
		}
		switch {
		case errors.Is(err, outbound.ErrCircuitOpen):
			s.logger.Debug("Source tripped, falling back", append(fields, zap.Error(err))...)
		case errors.Is(err, outbound.ErrRemoteNotFound):
			s.logger.Info("Source has no record, falling back", append(fields, zap.Error(err))...)
		default:
			unavailable := apperrors.NewRemoteUnavailableError(operation, err)
			s.logger.Warn("Source failed, falling back", append(fields,
				zap.String("code", string(unavailable.Code)),
				zap.Error(unavailable),
				zap.NamedError("cause", err),
			)...)
		}
	}
	return zero, lastErr
}
