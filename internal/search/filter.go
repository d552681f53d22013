package search

import (
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

type valueSet map[string]struct{}

func (s valueSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// newValueSet returns nil for an empty list so the filter stays open.
func newValueSet(values []string, normalize bool) valueSet {
	if len(values) == 0 {
		return nil
	}
	set := make(valueSet, len(values))
	for _, v := range values {
		if normalize {
			v = NormalizeQuery(v)
		}
		set[v] = struct{}{}
	}
	return set
}

// ApplyFilters returns the products matching every active filter. Absent
// filters are skipped entirely. The input slice is never modified.
func ApplyFilters(products []domain.Product, filters domain.SearchFilters) []domain.Product {
	categories := newValueSet(filters.Categories, false)
	collections := newValueSet(filters.Collections, true)
	materials := newValueSet(filters.Materials, true)
	brands := newValueSet(filters.Brands, true)

	var minPrice, maxPrice *float64
	if filters.PriceRange != nil {
		minPrice = filters.PriceRange.Min
		maxPrice = filters.PriceRange.Max
	}

	inStock := filters.InStock != nil && *filters.InStock
	isNew := filters.IsNew != nil && *filters.IsNew
	isFeatured := filters.IsFeatured != nil && *filters.IsFeatured

	result := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]

		if categories != nil && !categories.has(p.CategoryID) {
			continue
		}
		if collections != nil && !collections.has(NormalizeQuery(p.Collection)) {
			continue
		}
		if materials != nil && !hasAnyMaterial(p.Materials, materials) {
			continue
		}
		if brands != nil && !brands.has(NormalizeQuery(p.Brand)) {
			continue
		}

		// Price range filter, both bounds inclusive.
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}

		if inStock && !p.InStock() {
			continue
		}
		if isNew && !p.IsNew {
			continue
		}
		if isFeatured && !p.Featured {
			continue
		}

		result = append(result, *p)
	}

	return result
}

func hasAnyMaterial(materials []string, set valueSet) bool {
	for _, m := range materials {
		if set.has(NormalizeQuery(m)) {
			return true
		}
	}
	return false
}
