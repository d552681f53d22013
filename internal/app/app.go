package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/catalog"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/config"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/event"
	handler "github.com/MarketingDevWebexpR/b2b-template-sub005/internal/handler/http"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/history"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/search"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/service"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/database"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/health"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/httpclient"
	pkgkafka "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/kafka"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/middleware"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/tracing"
)

// App wires together all dependencies and runs the search service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server

	pool            *pgxpool.Pool
	redis           *redis.Client
	producer        *pkgkafka.Producer
	shutdownTracing tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// Anything opened before a failure is released before returning.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.close()
		}
	}()

	a.shutdownTracing, err = tracing.Init(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	healthHandler := health.NewHandler()

	provider, err := a.newCatalog(ctx, healthHandler)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog provider initialized", slog.String("source", cfg.CatalogSource))

	eng := search.NewEngine(provider, cfg.EngineOptions())

	var opts []service.Option
	if cfg.RedisEnabled {
		a.redis, err = database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store := history.NewStore(a.redis, cfg.RecentSearchLimit, cfg.RecentSearchTTL)
		healthHandler.Register("redis", store.Ping)
		opts = append(opts, service.WithHistory(store))
		logger.Info("recent search history enabled", slog.String("addr", cfg.Redis().Addr()))
	}

	if cfg.SearchEventsEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		healthHandler.Register("kafka", a.producer.Ping)
		opts = append(opts, service.WithPublisher(event.NewPublisher(a.producer, logger)))
		logger.Info("search analytics events enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	searchService := service.NewSearchService(eng, logger, opts...)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		}, logger)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	router := handler.NewRouter(searchService, healthHandler, logger, handler.RouterConfig{
		ServiceName:        cfg.ServiceName(),
		CORS:               cors,
		PprofAllowedCIDRs:  cfg.PprofAllowedCIDRs,
		RateLimiter:        limiter,
		SuggestCacheMaxAge: cfg.SuggestCacheMaxAge,
		DefaultPageSize:    cfg.DefaultPageSize,
		MaxPageSize:        cfg.MaxPageSize,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return a, nil
}

func (a *App) newCatalog(ctx context.Context, hh *health.Handler) (catalog.Provider, error) {
	switch a.cfg.CatalogSource {
	case catalog.SourcePostgres:
		pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres(), a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect catalog database: %w", err)
		}
		a.pool = pool
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, a.cfg.ServiceName()); err != nil {
			a.logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}
		hh.Register("postgres", pool.Ping)
		return catalog.NewPostgresProvider(pool, database.QueryTracer{
			SlowThreshold: a.cfg.PostgresSlowQuery,
			Logger:        a.logger,
		}), nil

	case catalog.SourceStatic:
		p, err := catalog.LoadStaticFile(a.cfg.CatalogStaticFile)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		clientCfg := httpclient.DefaultConfig()
		clientCfg.Timeout = a.cfg.CatalogTimeout
		breaker := httpclient.NewBreaker(httpclient.New(clientCfg), httpclient.DefaultBreakerConfig("catalog"), a.logger)
		p := catalog.NewHTTPProvider(a.cfg.CatalogAPIURL, breaker)
		hh.Register("catalog", p.Ping)
		return p, nil
	}
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// close releases every backing client that was opened.
func (a *App) close() error {
	var errs []error

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.producer = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.redis = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracing(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.shutdownTracing = nil
	}

	return errors.Join(errs...)
}
