package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

// newCollator returns a French collator. Collators keep internal buffers, so
// each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.French)
}

// SortProducts orders scored products by the given option and strips scores.
// Unknown options fall back to relevance. The input slice is not modified.
func SortProducts(scored []ScoredProduct, sortOption string) []domain.Product {
	sorted := make([]ScoredProduct, len(scored))
	copy(sorted, scored)

	col := newCollator()

	switch sortOption {
	case domain.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Product.Price < sorted[j].Product.Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Product.Price > sorted[j].Product.Price
		})
	case domain.SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Product.CreatedAt.After(sorted[j].Product.CreatedAt)
		})
	case domain.SortNameAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].Product.Name, sorted[j].Product.Name) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].Product.Name, sorted[j].Product.Name) > 0
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Score != sorted[j].Score {
				return sorted[i].Score > sorted[j].Score
			}
			return col.CompareString(sorted[i].Product.Name, sorted[j].Product.Name) < 0
		})
	}

	products := make([]domain.Product, len(sorted))
	for i := range sorted {
		products[i] = sorted[i].Product
	}
	return products
}
