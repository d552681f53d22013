package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/service"
	apperrors "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/errors"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/httputil"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/middleware"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/pagination"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/validator"
)

const defaultSuggestLimit = 10

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	service         *service.SearchService
	logger          *slog.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger, defaultPageSize, maxPageSize int) *SearchHandler {
	return &SearchHandler{
		service:         svc,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// --- Request DTOs ---

// SearchRequest is the validated query string of GET /api/v1/search.
type SearchRequest struct {
	Query    string   `query:"q" validate:"max=200"`
	Sort     string   `query:"sort" validate:"omitempty,oneof=relevance price-asc price-desc newest name-asc name-desc"`
	MinPrice *float64 `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice *float64 `query:"max_price" validate:"omitempty,gte=0"`
}

// SuggestRequest is the validated query string of GET /api/v1/search/suggest.
type SuggestRequest struct {
	Query string `query:"q" validate:"max=200"`
	Limit int    `query:"limit" validate:"min=1,max=20"`
}

// VisitorRequest identifies the storefront visitor owning a history.
type VisitorRequest struct {
	VisitorID string `header:"X-Visitor-ID" validate:"required,max=128"`
}

// --- Handlers ---

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseSearch(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := h.service.Search(r.Context(), params)
	httputil.WriteData(w, resp)
}

func (h *SearchHandler) parseSearch(r *http.Request) (domain.SearchParams, error) {
	q := r.URL.Query()
	req := SearchRequest{
		Query: strings.TrimSpace(q.Get("q")),
		Sort:  q.Get("sort"),
	}

	var err error
	if req.MinPrice, err = httputil.QueryFloat(r, "min_price"); err != nil {
		return domain.SearchParams{}, err
	}
	if req.MaxPrice, err = httputil.QueryFloat(r, "max_price"); err != nil {
		return domain.SearchParams{}, err
	}
	if err := validator.Validate(req); err != nil {
		return domain.SearchParams{}, err
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return domain.SearchParams{}, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	filters := domain.SearchFilters{
		Categories:  httputil.QueryList(r, "category"),
		Collections: httputil.QueryList(r, "collection"),
		Materials:   httputil.QueryList(r, "material"),
		Brands:      httputil.QueryList(r, "brand"),
	}
	if req.MinPrice != nil || req.MaxPrice != nil {
		filters.PriceRange = &domain.PriceRange{Min: req.MinPrice, Max: req.MaxPrice}
	}
	if filters.InStock, err = httputil.QueryBool(r, "in_stock"); err != nil {
		return domain.SearchParams{}, err
	}
	if filters.IsNew, err = httputil.QueryBool(r, "is_new"); err != nil {
		return domain.SearchParams{}, err
	}
	if filters.IsFeatured, err = httputil.QueryBool(r, "is_featured"); err != nil {
		return domain.SearchParams{}, err
	}

	page := pagination.FromRequest(r, h.defaultPageSize, h.maxPageSize)
	return domain.SearchParams{
		Query:    req.Query,
		Filters:  filters,
		Sort:     req.Sort,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// Suggest handles GET /api/v1/search/suggest
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", defaultSuggestLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	req := SuggestRequest{Query: strings.TrimSpace(r.URL.Query().Get("q")), Limit: limit}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	suggestions := h.service.Suggest(r.Context(), req.Query, req.Limit)
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	httputil.WriteData(w, map[string]any{"suggestions": suggestions})
}

// ProductByBarcode handles GET /api/v1/products/barcode/{ean}
func (h *SearchHandler) ProductByBarcode(w http.ResponseWriter, r *http.Request) {
	ean := chi.URLParam(r, "ean")
	if err := validator.Var("ean", ean, "required,barcode"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.ProductByBarcode(r.Context(), ean)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, product)
}

// ProductByReference handles GET /api/v1/products/reference/{reference}
func (h *SearchHandler) ProductByReference(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(chi.URLParam(r, "reference"))
	if err := validator.Var("reference", ref, "required,max=64"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.ProductByReference(r.Context(), ref)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, product)
}

// RecentSearches handles GET /api/v1/search/recent
func (h *SearchHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}

	queries, err := h.service.RecentSearches(r.Context(), visitorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, map[string]any{"queries": queries})
}

// ClearRecentSearches handles DELETE /api/v1/search/recent
func (h *SearchHandler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearRecentSearches(r.Context(), visitorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SearchHandler) visitorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := VisitorRequest{VisitorID: strings.TrimSpace(r.Header.Get(middleware.HeaderVisitorID))}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return "", false
	}
	return req.VisitorID, true
}
