package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

// ProductByBarcode returns the product whose EAN equals ean exactly, or nil
// when none does.
func (e *Engine) ProductByBarcode(ctx context.Context, ean string) (*domain.Product, error) {
	ean = strings.TrimSpace(ean)
	if ean == "" {
		return nil, nil
	}

	products, err := e.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("product by barcode: %w", err)
	}

	for i := range products {
		if products[i].EAN == ean {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// ProductByReference returns the product whose reference matches ref after
// normalization, or nil when none does.
func (e *Engine) ProductByReference(ctx context.Context, ref string) (*domain.Product, error) {
	ref = NormalizeQuery(ref)
	if ref == "" {
		return nil, nil
	}

	products, err := e.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("product by reference: %w", err)
	}

	for i := range products {
		if NormalizeQuery(products[i].Reference) == ref {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}
