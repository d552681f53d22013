// Command seed generates a deterministic demo jewelry catalog and writes it
// either to a static JSON file (CATALOG_SOURCE=static) or to the catalog
// Postgres tables (CATALOG_SOURCE=postgres).
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/catalog"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/config"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/database"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/logger"
)

func main() {
	cfg, err := config.LoadSeed()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("catalog-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.SeedConfig, log *slog.Logger) error {
	start := time.Now()
	products, categories := catalog.Generate(cfg.Products, cfg.Seed, start.UTC())
	log.Info("catalog generated",
		slog.Int("products", len(products)),
		slog.Int("categories", len(categories)),
		slog.Uint64("seed", cfg.Seed),
	)

	switch cfg.Target {
	case config.SeedTargetPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := catalog.Seed(ctx, pool, products, categories, cfg.BatchSize); err != nil {
			return err
		}
		log.Info("catalog seeded",
			slog.String("target", cfg.Target),
			slog.Duration("elapsed", time.Since(start)),
		)
	default:
		if err := catalog.WriteStaticFile(cfg.Output, products, categories); err != nil {
			return err
		}
		log.Info("catalog written",
			slog.String("path", cfg.Output),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
	return nil
}
