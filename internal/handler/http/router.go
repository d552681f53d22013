package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/service"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/health"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/middleware"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/pagination"
)

// RouterConfig carries the HTTP-layer settings.
type RouterConfig struct {
	ServiceName        string
	CORS               middleware.CORSConfig
	PprofAllowedCIDRs  []string
	RateLimiter        *middleware.RateLimiter
	SuggestCacheMaxAge int
	DefaultPageSize    int
	MaxPageSize        int
	RequestTimeout     time.Duration
}

// NewRouter creates a chi router with all search service routes registered.
func NewRouter(
	searchService *service.SearchService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = pagination.DefaultPageSize
	}
	if cfg.MaxPageSize < 1 {
		cfg.MaxPageSize = pagination.MaxPageSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	h := NewSearchHandler(searchService, logger, cfg.DefaultPageSize, cfg.MaxPageSize)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.Search)
			r.With(middleware.CacheControl(cfg.SuggestCacheMaxAge)).Get("/suggest", h.Suggest)
			r.Get("/recent", h.RecentSearches)
			r.Delete("/recent", h.ClearRecentSearches)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/barcode/{ean}", h.ProductByBarcode)
			r.Get("/reference/{reference}", h.ProductByReference)
		})
	})

	return r
}
