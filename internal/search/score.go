package search

import (
	"strings"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
)

// ScoringWeights controls how much each field contributes to relevance.
type ScoringWeights struct {
	NameExact      float64
	Name           float64
	ReferenceExact float64
	Reference      float64
	EAN            float64
	Collection     float64
	Brand          float64
	Materials      float64
	Description    float64

	// Multiplicative boosts applied after the weighted sum.
	AvailableBoost float64
	FeaturedBoost  float64
}

// DefaultScoringWeights returns the storefront's production weight table.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		NameExact:      100,
		Name:           50,
		ReferenceExact: 90,
		Reference:      40,
		EAN:            85,
		Collection:     30,
		Brand:          25,
		Materials:      20,
		Description:    10,
		AvailableBoost: 1.1,
		FeaturedBoost:  1.05,
	}
}

// ScoredProduct pairs a product with its relevance score.
type ScoredProduct struct {
	Product domain.Product
	Score   float64
}

// Scorer computes relevance scores. It holds no per-query state and is safe
// for concurrent use.
type Scorer struct {
	weights   ScoringWeights
	matcher   *Matcher
	stopWords StopWords
}

// NewScorer creates a scorer.
func NewScorer(weights ScoringWeights, matcher *Matcher, stopWords StopWords) *Scorer {
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Scorer{
		weights:   weights,
		matcher:   matcher,
		stopWords: stopWords,
	}
}

// Score returns the relevance of p for an already-normalized query; 0 means no match.
func (s *Scorer) Score(p *domain.Product, normalizedQuery string) float64 {
	if normalizedQuery == "" {
		return 0
	}

	q := normalizedQuery
	tokens := Tokenize(q, s.stopWords)
	w := s.weights
	var score float64

	name := NormalizeQuery(p.Name)
	nameEn := NormalizeQuery(p.NameEn)
	if name == q || (nameEn != "" && nameEn == q) {
		score += w.NameExact
	} else {
		nameScore := max(s.matcher.FuzzyMatch(p.Name, q), s.matcher.MatchTokens(p.Name, tokens))
		if p.NameEn != "" {
			nameScore = max(nameScore, s.matcher.FuzzyMatch(p.NameEn, q))
		}
		score += nameScore * w.Name
	}

	if ref := NormalizeQuery(p.Reference); ref != "" {
		if ref == q {
			score += w.ReferenceExact
		} else if strings.Contains(ref, q) || strings.Contains(q, ref) {
			score += s.matcher.FuzzyMatch(p.Reference, q) * w.Reference
		}
	}

	if ean := NormalizeQuery(p.EAN); ean != "" {
		if ean == q || strings.Contains(ean, q) || strings.Contains(q, ean) {
			score += w.EAN
		}
	}

	if p.Collection != "" {
		score += s.matcher.MatchTokens(p.Collection, tokens) * w.Collection
	}

	if p.Brand != "" {
		score += s.matcher.MatchTokens(p.Brand, tokens) * w.Brand
	}

	var materialScore float64
	for _, m := range p.Materials {
		materialScore = max(materialScore, s.matcher.MatchTokens(m, tokens))
	}
	score += materialScore * w.Materials

	score += s.matcher.MatchTokens(p.Description, tokens) * w.Description

	if score > 0 {
		if p.IsAvailable {
			score *= w.AvailableBoost
		}
		if p.Featured {
			score *= w.FeaturedBoost
		}
	}

	return score
}

// ScoreAll scores every product and keeps only those with a positive score.
func (s *Scorer) ScoreAll(products []domain.Product, normalizedQuery string) []ScoredProduct {
	scored := make([]ScoredProduct, 0)
	for i := range products {
		score := s.Score(&products[i], normalizedQuery)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredProduct{Product: products[i], Score: score})
	}
	return scored
}
