package search

import (
	"context"
	"fmt"
	"time"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/pagination"
)

// Catalog supplies a fresh snapshot of the product catalog.
type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Options tunes the engine. Zero values select the defaults.
type Options struct {
	Weights             *ScoringWeights
	StopWords           StopWords
	FuzzyMatchThreshold float64
	SuggestionThreshold float64
	DefaultPageSize     int
}

// Engine runs the search pipeline against a catalog snapshot fetched per call.
// It keeps no state between calls.
type Engine struct {
	catalog             Catalog
	matcher             *Matcher
	scorer              *Scorer
	suggestionThreshold float64
	defaultPageSize     int
}

// NewEngine creates a search engine reading from catalog.
func NewEngine(catalog Catalog, opts Options) *Engine {
	weights := DefaultScoringWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	if opts.SuggestionThreshold <= 0 {
		opts.SuggestionThreshold = DefaultSuggestionThreshold
	}
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = pagination.DefaultPageSize
	}

	matcher := NewMatcher(opts.FuzzyMatchThreshold)
	return &Engine{
		catalog:             catalog,
		matcher:             matcher,
		scorer:              NewScorer(weights, matcher, opts.StopWords),
		suggestionThreshold: opts.SuggestionThreshold,
		defaultPageSize:     opts.DefaultPageSize,
	}
}

// Search runs the full pipeline: score, filter, re-score, sort, facet and
// paginate. It never returns an error; failures produce an empty response
// with Status set to degraded and Reason describing the failure.
func (e *Engine) Search(ctx context.Context, params domain.SearchParams) (resp domain.SearchResponse) {
	start := time.Now()

	if !domain.IsValidSort(params.Sort) {
		params.Sort = domain.SortRelevance
	}
	page := pagination.Params{Page: params.Page, PageSize: params.PageSize}.Normalize(e.defaultPageSize)

	defer func() {
		if rec := recover(); rec != nil {
			resp = degradedResponse(params, page, fmt.Errorf("search pipeline panic: %v", rec))
		}
		resp.TookMs = time.Since(start).Milliseconds()
	}()

	products, err := e.catalog.Products(ctx)
	if err != nil {
		return degradedResponse(params, page, fmt.Errorf("fetch products: %w", err))
	}
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		return degradedResponse(params, page, fmt.Errorf("fetch categories: %w", err))
	}

	query := NormalizeQuery(params.Query)

	// First pass: keep only products that match the query at all.
	matched := e.scorer.ScoreAll(products, query)
	candidates := make([]domain.Product, len(matched))
	for i := range matched {
		candidates[i] = matched[i].Product
	}

	filtered := ApplyFilters(candidates, params.Filters)

	// Second pass: scores reflect exactly the filtered set.
	rescored := make([]ScoredProduct, len(filtered))
	for i := range filtered {
		rescored[i] = ScoredProduct{Product: filtered[i], Score: e.scorer.Score(&filtered[i], query)}
	}

	sorted := SortProducts(rescored, params.Sort)
	total := len(sorted)

	return domain.SearchResponse{
		Products:         pagination.Slice(sorted, page),
		TotalCount:       total,
		Page:             page.Page,
		PageSize:         page.PageSize,
		TotalPages:       pagination.TotalPages(total, page.PageSize),
		Query:            params.Query,
		AppliedFilters:   params.Filters,
		AvailableFilters: ExtractAvailableFilters(filtered, categories),
		Status:           domain.StatusOK,
	}
}

func degradedResponse(params domain.SearchParams, page pagination.Params, err error) domain.SearchResponse {
	return domain.SearchResponse{
		Products:       []domain.Product{},
		Page:           page.Page,
		PageSize:       page.PageSize,
		Query:          params.Query,
		AppliedFilters: params.Filters,
		AvailableFilters: domain.AvailableFilters{
			Categories:  []domain.FilterOption{},
			Collections: []domain.FilterOption{},
			Materials:   []domain.FilterOption{},
			Brands:      []domain.FilterOption{},
		},
		Status: domain.StatusDegraded,
		Reason: err.Error(),
	}
}
