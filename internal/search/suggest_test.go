package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

func suggestCatalog() *fakeCatalog {
	var products []domain.Product
	collections := []string{"Bague Royale", "Bague Éclat", "Bague Royale", "Bague Trio", "", "", ""}
	for i := 1; i <= 7; i++ {
		p := newTestProduct(fmt.Sprintf("Bague %d", i), float64(i*100))
		p.Slug = fmt.Sprintf("bague-%d", i)
		p.Collection = collections[i-1]
		products = append(products, p)
	}
	return &fakeCatalog{
		products: products,
		categories: []domain.Category{
			{ID: "c1", Name: "Bagues fines", Slug: "bagues-fines"},
			{ID: "c2", Name: "Bagues or", Slug: "bagues-or"},
			{ID: "c3", Name: "Bagues argent", Slug: "bagues-argent"},
			{ID: "c4", Name: "Bagues enfant", Slug: "bagues-enfant"},
			{ID: "c5", Name: "Montres", Slug: "montres"},
		},
	}
}

func countByType(suggestions []domain.Suggestion) map[string]int {
	counts := make(map[string]int)
	for _, s := range suggestions {
		counts[s.Type]++
	}
	return counts
}

func TestEngine_Suggest_ShortQuerySkipsCatalog(t *testing.T) {
	catalog := suggestCatalog()
	engine := newTestEngine(catalog)

	for _, q := range []string{"", "a", " a ", "é"} {
		got := engine.Suggest(context.Background(), q, 10)
		assert.NotNil(t, got)
		assert.Empty(t, got, "query %q", q)
	}
	assert.Equal(t, 0, catalog.calls)
}

func TestEngine_Suggest_CapsPerType(t *testing.T) {
	got := newTestEngine(suggestCatalog()).Suggest(context.Background(), "bague", 0)

	require.Len(t, got, 10)
	counts := countByType(got)
	assert.Equal(t, 5, counts[domain.SuggestionProduct])
	assert.Equal(t, 3, counts[domain.SuggestionCategory])
	assert.Equal(t, 2, counts[domain.SuggestionCollection])

	// Products first, then categories, then collections.
	assert.Equal(t, domain.SuggestionProduct, got[0].Type)
	assert.Equal(t, "Bague 1", got[0].Text)
	assert.Equal(t, "bague-1", got[0].Slug)
	assert.Equal(t, domain.Suggestion{Type: domain.SuggestionCategory, ID: "c1", Text: "Bagues fines", Slug: "bagues-fines"}, got[5])
	assert.Equal(t, domain.Suggestion{Type: domain.SuggestionCollection, Text: "Bague Royale"}, got[8])
	assert.Equal(t, domain.Suggestion{Type: domain.SuggestionCollection, Text: "Bague Éclat"}, got[9])
}

func TestEngine_Suggest_TruncatesToLimit(t *testing.T) {
	got := newTestEngine(suggestCatalog()).Suggest(context.Background(), "bague", 4)

	require.Len(t, got, 4)
	for _, s := range got {
		assert.Equal(t, domain.SuggestionProduct, s.Type)
	}
}

func TestEngine_Suggest_DiacriticInsensitive(t *testing.T) {
	catalog := &fakeCatalog{
		categories: []domain.Category{{ID: "boucles", Name: "Boucles d'oreilles"}},
		products:   domainProducts{{"Créoles Éclat", 90}}.build(),
	}

	got := newTestEngine(catalog).Suggest(context.Background(), "CREOLES", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Créoles Éclat", got[0].Text)
}

func TestEngine_Suggest_FuzzyHit(t *testing.T) {
	catalog := &fakeCatalog{products: domainProducts{{"Collier", 90}, {"Montre", 150}}.build()}

	got := newTestEngine(catalog).Suggest(context.Background(), "colier", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Collier", got[0].Text)
}

func TestEngine_Suggest_CatalogError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("timeout")}

	got := newTestEngine(catalog).Suggest(context.Background(), "bague", 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
