package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/httpclient"
)

// listEnvelope is the catalog API response shape.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// HTTPProvider reads the catalog from the catalog API through a circuit
// breaker.
type HTTPProvider struct {
	baseURL string
	breaker *httpclient.Breaker
}

// NewHTTPProvider creates a provider for the API rooted at baseURL.
func NewHTTPProvider(baseURL string, breaker *httpclient.Breaker) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		breaker: breaker,
	}
}

// Products fetches GET {base}/products.
func (p *HTTPProvider) Products(ctx context.Context) ([]domain.Product, error) {
	var env listEnvelope[domain.Product]
	if err := p.breaker.GetJSON(ctx, p.baseURL+"/products", &env); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	fillProductSlugs(env.Data)
	return env.Data, nil
}

// Categories fetches GET {base}/categories.
func (p *HTTPProvider) Categories(ctx context.Context) ([]domain.Category, error) {
	var env listEnvelope[domain.Category]
	if err := p.breaker.GetJSON(ctx, p.baseURL+"/categories", &env); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	fillCategorySlugs(env.Data)
	return env.Data, nil
}

// Ping checks that the catalog API answers the categories listing.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	_, err := p.breaker.GetBody(ctx, p.baseURL+"/categories")
	return err
}
