package search

import (
	"sort"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

// facetCounter counts values while remembering first-seen order, so options
// with equal counts keep a stable, input-driven order.
// Empty values are skipped unless keepEmpty is set.
type facetCounter struct {
	order     []string
	counts    map[string]int
	keepEmpty bool
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (f *facetCounter) add(value string) {
	if value == "" && !f.keepEmpty {
		return
	}
	if _, ok := f.counts[value]; !ok {
		f.order = append(f.order, value)
	}
	f.counts[value]++
}

func (f *facetCounter) options(label func(string) string) []domain.FilterOption {
	opts := make([]domain.FilterOption, 0, len(f.order))
	for _, v := range f.order {
		opts = append(opts, domain.FilterOption{Value: v, Label: label(v), Count: f.counts[v]})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Count > opts[j].Count
	})
	return opts
}

func identityLabel(v string) string { return v }

// ExtractAvailableFilters derives facet options and the price span from an
// already-filtered product list. Category options are labeled from categories,
// falling back to the raw ID; every product is counted under its category,
// including an empty one, so category counts sum to len(products).
func ExtractAvailableFilters(products []domain.Product, categories []domain.Category) domain.AvailableFilters {
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	byCategory := newFacetCounter()
	byCategory.keepEmpty = true
	byCollection := newFacetCounter()
	byMaterial := newFacetCounter()
	byBrand := newFacetCounter()

	var priceRange domain.PriceRange
	for i := range products {
		p := &products[i]

		byCategory.add(p.CategoryID)
		byCollection.add(p.Collection)
		for _, m := range p.Materials {
			byMaterial.add(m)
		}
		byBrand.add(p.Brand)

		price := p.Price
		if priceRange.Min == nil || price < *priceRange.Min {
			priceRange.Min = &price
		}
		if priceRange.Max == nil || price > *priceRange.Max {
			maxPrice := price
			priceRange.Max = &maxPrice
		}
	}

	return domain.AvailableFilters{
		Categories: byCategory.options(func(id string) string {
			if name, ok := categoryNames[id]; ok && name != "" {
				return name
			}
			return id
		}),
		Collections: byCollection.options(identityLabel),
		Materials:   byMaterial.options(identityLabel),
		Brands:      byBrand.options(identityLabel),
		PriceRange:  priceRange,
	}
}
