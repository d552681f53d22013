package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

const (
	minSuggestQueryLen    = 2
	defaultSuggestLimit   = 10
	maxProductSuggestions = 5
	maxCategorySuggest    = 3
	maxCollectionSuggest  = 2
)

// Suggest returns type-ahead entries for query: up to 5 products, 3
// categories and 2 collections, in that order, truncated to limit. Queries
// shorter than two characters return nothing without touching the catalog.
// Catalog failures also yield an empty list.
func (e *Engine) Suggest(ctx context.Context, query string, limit int) []domain.Suggestion {
	suggestions := []domain.Suggestion{}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < minSuggestQueryLen {
		return suggestions
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	q := NormalizeQuery(query)

	products, err := e.catalog.Products(ctx)
	if err != nil {
		return suggestions
	}
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		return suggestions
	}

	productHits := 0
	for i := range products {
		if productHits == maxProductSuggestions {
			break
		}
		p := &products[i]
		if !e.suggests(p.Name, q) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Type: domain.SuggestionProduct,
			ID:   p.ID,
			Text: p.Name,
			Slug: p.Slug,
		})
		productHits++
	}

	categoryHits := 0
	for _, c := range categories {
		if categoryHits == maxCategorySuggest {
			break
		}
		if !e.suggests(c.Name, q) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Type: domain.SuggestionCategory,
			ID:   c.ID,
			Text: c.Name,
			Slug: c.Slug,
		})
		categoryHits++
	}

	collectionHits := 0
	for _, name := range distinctCollections(products) {
		if collectionHits == maxCollectionSuggest {
			break
		}
		if !e.suggests(name, q) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Type: domain.SuggestionCollection,
			Text: name,
		})
		collectionHits++
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func (e *Engine) suggests(text, normalizedQuery string) bool {
	if text == "" {
		return false
	}
	if strings.Contains(NormalizeQuery(text), normalizedQuery) {
		return true
	}
	return e.matcher.FuzzyMatch(text, normalizedQuery) > e.suggestionThreshold
}

// distinctCollections returns collection names in first-seen order.
func distinctCollections(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var names []string
	for i := range products {
		name := products[i].Collection
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
