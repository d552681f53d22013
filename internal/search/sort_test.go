package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

func scoredOf(products []domain.Product, scores ...float64) []ScoredProduct {
	out := make([]ScoredProduct, len(products))
	for i := range products {
		out[i] = ScoredProduct{Product: products[i], Score: scores[i]}
	}
	return out
}

func TestSortProducts_RelevanceWithNameTieBreak(t *testing.T) {
	products := domainProducts{
		{"Émeraude", 10},
		{"Collier", 20},
		{"Bague", 30},
		{"Saphir", 40},
	}.build()

	got := SortProducts(scoredOf(products, 50, 50, 50, 90), domain.SortRelevance)
	assert.Equal(t, []string{"Saphir", "Bague", "Collier", "Émeraude"}, names(got))
}

func TestSortProducts_UnknownOptionFallsBackToRelevance(t *testing.T) {
	products := domainProducts{{"Bague", 30}, {"Saphir", 40}}.build()

	got := SortProducts(scoredOf(products, 10, 20), "popularity")
	assert.Equal(t, []string{"Saphir", "Bague"}, names(got))

	got = SortProducts(scoredOf(products, 10, 20), "")
	assert.Equal(t, []string{"Saphir", "Bague"}, names(got))
}

func TestSortProducts_Price(t *testing.T) {
	products := domainProducts{{"A", 500}, {"B", 100}, {"C", 300}}.build()
	scored := scoredOf(products, 1, 1, 1)

	asc := SortProducts(scored, domain.SortPriceAsc)
	assert.Equal(t, []string{"B", "C", "A"}, names(asc))

	desc := SortProducts(scored, domain.SortPriceDesc)
	assert.Equal(t, []string{"A", "C", "B"}, names(desc))
}

func TestSortProducts_PriceAscReversedEqualsPriceDesc(t *testing.T) {
	products := domainProducts{
		{"A", 120}, {"B", 15.5}, {"C", 990}, {"D", 42}, {"E", 310}, {"F", 77.7},
	}.build()
	scored := scoredOf(products, 3, 1, 4, 1, 5, 9)

	asc := SortProducts(scored, domain.SortPriceAsc)
	desc := SortProducts(scored, domain.SortPriceDesc)

	reversed := make([]domain.Product, len(asc))
	for i := range asc {
		reversed[len(asc)-1-i] = asc[i]
	}
	assert.Equal(t, desc, reversed)
}

func TestSortProducts_Newest(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	products := domainProducts{{"Old", 1}, {"New", 2}, {"Middle", 3}}.build()
	products[0].CreatedAt = now.Add(-48 * time.Hour)
	products[1].CreatedAt = now
	products[2].CreatedAt = now.Add(-24 * time.Hour)

	got := SortProducts(scoredOf(products, 1, 1, 1), domain.SortNewest)
	assert.Equal(t, []string{"New", "Middle", "Old"}, names(got))
}

func TestSortProducts_NameUsesFrenchCollation(t *testing.T) {
	products := domainProducts{{"Zircon", 1}, {"Émeraude", 2}, {"Améthyste", 3}}.build()
	scored := scoredOf(products, 1, 1, 1)

	asc := SortProducts(scored, domain.SortNameAsc)
	assert.Equal(t, []string{"Améthyste", "Émeraude", "Zircon"}, names(asc))

	desc := SortProducts(scored, domain.SortNameDesc)
	assert.Equal(t, []string{"Zircon", "Émeraude", "Améthyste"}, names(desc))
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	products := domainProducts{{"A", 500}, {"B", 100}}.build()
	scored := scoredOf(products, 1, 2)

	_ = SortProducts(scored, domain.SortPriceAsc)
	assert.Equal(t, "A", scored[0].Product.Name)
	assert.Equal(t, "B", scored[1].Product.Name)
}
