package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	apperrors "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/errors"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/logger"
)

const tracerName = "storefront-search/service"

// Engine runs searches against the catalog.
type Engine interface {
	Search(ctx context.Context, params domain.SearchParams) domain.SearchResponse
	Suggest(ctx context.Context, query string, limit int) []domain.Suggestion
	ProductByBarcode(ctx context.Context, ean string) (*domain.Product, error)
	ProductByReference(ctx context.Context, ref string) (*domain.Product, error)
}

// History stores recent queries per visitor.
type History interface {
	Record(ctx context.Context, visitorID, query string) error
	List(ctx context.Context, visitorID string) ([]string, error)
	Clear(ctx context.Context, visitorID string) error
}

// Publisher emits analytics for completed searches.
type Publisher interface {
	SearchPerformed(ctx context.Context, params domain.SearchParams, resp *domain.SearchResponse)
}

// SearchService wraps the engine with logging, metrics, tracing, recent
// search history and analytics.
type SearchService struct {
	engine    Engine
	history   History
	publisher Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures optional collaborators.
type Option func(*SearchService)

// WithHistory records each visitor's queries in h.
func WithHistory(h History) Option {
	return func(s *SearchService) { s.history = h }
}

// WithPublisher publishes a search.performed event per search.
func WithPublisher(p Publisher) Option {
	return func(s *SearchService) { s.publisher = p }
}

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *SearchService) { s.tracer = tp.Tracer(tracerName) }
}

// NewSearchService creates a new search service.
func NewSearchService(eng Engine, logger *slog.Logger, opts ...Option) *SearchService {
	s := &SearchService{
		engine: eng,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SearchService) log(ctx context.Context) *slog.Logger {
	return logger.WithContext(ctx, s.logger)
}

// Search runs the pipeline. Catalog failures surface as a degraded response,
// never as an error.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) domain.SearchResponse {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "search.pipeline", trace.WithAttributes(
		attribute.String("search.query", params.Query),
		attribute.String("search.sort", params.Sort),
		attribute.Int("search.page", params.Page),
	))
	defer span.End()

	resp := s.engine.Search(ctx, params)

	span.SetAttributes(
		attribute.Int("search.total_count", resp.TotalCount),
		attribute.String("search.status", resp.Status),
	)
	searchDuration.WithLabelValues(resp.Status).Observe(time.Since(start).Seconds())

	l := s.log(ctx)
	if resp.Degraded() {
		searchDegraded.Inc()
		span.SetStatus(codes.Error, resp.Reason)
		l.WarnContext(ctx, "search degraded",
			slog.String("query", params.Query),
			slog.String("reason", resp.Reason),
		)
	} else {
		searchResults.Observe(float64(resp.TotalCount))
		l.DebugContext(ctx, "search executed",
			slog.String("query", params.Query),
			slog.Int("total", resp.TotalCount),
			slog.Int64("took_ms", resp.TookMs),
		)
		s.recordHistory(ctx, params.Query)
	}

	if s.publisher != nil {
		s.publisher.SearchPerformed(ctx, params, &resp)
	}
	return resp
}

func (s *SearchService) recordHistory(ctx context.Context, query string) {
	visitorID := logger.VisitorIDFromContext(ctx)
	if s.history == nil || visitorID == "" {
		return
	}
	if err := s.history.Record(ctx, visitorID, query); err != nil {
		s.log(ctx).WarnContext(ctx, "failed to record recent search", slog.String("error", err.Error()))
	}
}

// Suggest returns type-ahead suggestions for query.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) []domain.Suggestion {
	suggestions := s.engine.Suggest(ctx, query, limit)
	if len(suggestions) == 0 {
		suggestRequests.WithLabelValues("empty").Inc()
	} else {
		suggestRequests.WithLabelValues("hit").Inc()
	}
	s.log(ctx).DebugContext(ctx, "suggest executed",
		slog.String("query", query),
		slog.Int("count", len(suggestions)),
	)
	return suggestions
}

// ProductByBarcode returns the product whose EAN is ean.
func (s *SearchService) ProductByBarcode(ctx context.Context, ean string) (*domain.Product, error) {
	p, err := s.engine.ProductByBarcode(ctx, ean)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "barcode lookup failed", slog.String("ean", ean), slog.String("error", err.Error()))
		return nil, apperrors.Unavailable("catalog", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("product", ean)
	}
	return p, nil
}

// ProductByReference returns the product carrying reference ref.
func (s *SearchService) ProductByReference(ctx context.Context, ref string) (*domain.Product, error) {
	p, err := s.engine.ProductByReference(ctx, ref)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "reference lookup failed", slog.String("reference", ref), slog.String("error", err.Error()))
		return nil, apperrors.Unavailable("catalog", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("product", ref)
	}
	return p, nil
}

// RecentSearches lists the visitor's recent queries, most recent first.
func (s *SearchService) RecentSearches(ctx context.Context, visitorID string) ([]string, error) {
	if s.history == nil {
		return []string{}, nil
	}
	queries, err := s.history.List(ctx, visitorID)
	if err != nil {
		return nil, apperrors.Unavailable("recent searches", err)
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}

// ClearRecentSearches forgets the visitor's recent queries.
func (s *SearchService) ClearRecentSearches(ctx context.Context, visitorID string) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Clear(ctx, visitorID); err != nil {
		return apperrors.Unavailable("recent searches", err)
	}
	return nil
}
