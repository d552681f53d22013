// Package catalog provides the product and category snapshots the search
// engine reads on every request.
package catalog

import (
	"context"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/slug"
)

// Provider returns a fresh copy of the catalog. Implementations must not
// cache: every call reflects the source of truth at that moment.
type Provider interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Source names accepted by CATALOG_SOURCE.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceStatic   = "static"
)

func fillProductSlugs(products []domain.Product) {
	for i := range products {
		if products[i].Slug == "" {
			products[i].Slug = slug.Generate(products[i].Name)
		}
	}
}

func fillCategorySlugs(categories []domain.Category) {
	for i := range categories {
		if categories[i].Slug == "" {
			categories[i].Slug = slug.Generate(categories[i].Name)
		}
	}
}
