package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

func TestExtractAvailableFilters_Counts(t *testing.T) {
	products := filterCatalog()
	categories := []domain.Category{
		{ID: "bagues", Name: "Bagues"},
		{ID: "colliers", Name: "Colliers"},
	}

	got := ExtractAvailableFilters(products, categories)

	require.Len(t, got.Categories, 5)
	assert.Equal(t, domain.FilterOption{Value: "bagues", Label: "Bagues", Count: 1}, got.Categories[0])
	assert.Equal(t, "Colliers", got.Categories[1].Label)
	// Unknown categories are labeled with their raw ID.
	assert.Equal(t, "bracelets", got.Categories[2].Label)

	assert.Equal(t, []domain.FilterOption{
		{Value: "Éclat", Label: "Éclat", Count: 2},
		{Value: "Océane", Label: "Océane", Count: 1},
	}, got.Collections)

	assert.Equal(t, []domain.FilterOption{
		{Value: "Argent", Label: "Argent", Count: 2},
		{Value: "Or jaune", Label: "Or jaune", Count: 1},
		{Value: "Diamant", Label: "Diamant", Count: 1},
		{Value: "Perle", Label: "Perle", Count: 1},
	}, got.Materials)

	assert.Equal(t, []domain.FilterOption{
		{Value: "Lumière", Label: "Lumière", Count: 2},
		{Value: "Maison Or", Label: "Maison Or", Count: 1},
	}, got.Brands)

	require.NotNil(t, got.PriceRange.Min)
	require.NotNil(t, got.PriceRange.Max)
	assert.Equal(t, 99.99, *got.PriceRange.Min)
	assert.Equal(t, 200.01, *got.PriceRange.Max)
}

func TestExtractAvailableFilters_SortedByCountDescending(t *testing.T) {
	products := domainProducts{{"A", 1}, {"B", 2}, {"C", 3}, {"D", 4}}.build()
	products[0].CategoryID = "colliers"
	products[1].CategoryID = "bagues"
	products[2].CategoryID = "bagues"
	products[3].CategoryID = "bagues"

	got := ExtractAvailableFilters(products, nil)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "bagues", got.Categories[0].Value)
	assert.Equal(t, 3, got.Categories[0].Count)
	assert.Equal(t, "colliers", got.Categories[1].Value)
}

func TestExtractAvailableFilters_CategoryCountsSumToSetSize(t *testing.T) {
	products := filterCatalog()
	got := ExtractAvailableFilters(products, nil)

	sum := 0
	for _, opt := range got.Categories {
		sum += opt.Count
	}
	assert.Equal(t, len(products), sum)
}

func TestExtractAvailableFilters_EmptyCategoryIsCounted(t *testing.T) {
	products := filterCatalog()
	products[0].CategoryID = ""
	got := ExtractAvailableFilters(products, nil)

	sum := 0
	var uncategorized *domain.FilterOption
	for i, opt := range got.Categories {
		sum += opt.Count
		if opt.Value == "" {
			uncategorized = &got.Categories[i]
		}
	}
	assert.Equal(t, len(products), sum)
	require.NotNil(t, uncategorized)
	assert.Equal(t, 1, uncategorized.Count)
	assert.Empty(t, uncategorized.Label)
}

func TestExtractAvailableFilters_Empty(t *testing.T) {
	got := ExtractAvailableFilters(nil, nil)

	assert.Nil(t, got.PriceRange.Min)
	assert.Nil(t, got.PriceRange.Max)
	assert.Empty(t, got.Categories)
	assert.NotNil(t, got.Categories)
	assert.Empty(t, got.Collections)
	assert.Empty(t, got.Materials)
	assert.Empty(t, got.Brands)
}
