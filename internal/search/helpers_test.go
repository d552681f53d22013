package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

func newTestProduct(name string, price float64) domain.Product {
	return domain.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Slug:       "test-slug",
		Price:      price,
		IsPriceTTC: true,
		CategoryID: "bagues",
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func float(v float64) *float64 { return &v }

func boolean(v bool) *bool { return &v }

// fakeCatalog serves a fixed snapshot and counts fetches.
type fakeCatalog struct {
	products   []domain.Product
	categories []domain.Category
	err        error
	panicMsg   string
	calls      int
}

func (f *fakeCatalog) Products(_ context.Context) ([]domain.Product, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) Categories(_ context.Context) ([]domain.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

type domainProducts []struct {
	name  string
	price float64
}

func (d domainProducts) build() []domain.Product {
	products := make([]domain.Product, 0, len(d))
	for _, p := range d {
		products = append(products, newTestProduct(p.name, p.price))
	}
	return products
}
