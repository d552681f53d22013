package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

// StaticProvider serves a fixed catalog. Each call returns copies, so callers
// may not mutate the provider's data through the result.
type StaticProvider struct {
	products   []domain.Product
	categories []domain.Category
}

// NewStaticProvider creates a provider over the given catalog.
func NewStaticProvider(products []domain.Product, categories []domain.Category) *StaticProvider {
	fillProductSlugs(products)
	fillCategorySlugs(categories)
	return &StaticProvider{products: products, categories: categories}
}

// Products returns a copy of the products.
func (s *StaticProvider) Products(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		p.Materials = slices.Clone(p.Materials)
		out[i] = p
	}
	return out, nil
}

// Categories returns a copy of the categories.
func (s *StaticProvider) Categories(_ context.Context) ([]domain.Category, error) {
	return slices.Clone(s.categories), nil
}

// staticFile is the on-disk shape of a static catalog.
type staticFile struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
}

// LoadStaticFile reads a JSON catalog of the form
// {"products": [...], "categories": [...]}.
func LoadStaticFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static catalog: %w", err)
	}
	var f staticFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode static catalog %s: %w", path, err)
	}
	return NewStaticProvider(f.Products, f.Categories), nil
}

// WriteStaticFile writes a catalog in the format read by LoadStaticFile.
func WriteStaticFile(path string, products []domain.Product, categories []domain.Category) error {
	data, err := json.MarshalIndent(staticFile{Products: products, Categories: categories}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode static catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write static catalog: %w", err)
	}
	return nil
}
