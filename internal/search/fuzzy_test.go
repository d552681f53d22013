package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"bague", "bague", 0},
		{"collier", "colier", 1},
		{"émeraude", "emeraude", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLevenshteinDistance_Properties(t *testing.T) {
	words := []string{"", "or", "bague", "bracelet", "boucle", "émeraude", "collier perle"}

	for _, a := range words {
		assert.Equal(t, 0, LevenshteinDistance(a, a), "identity for %q", a)
		for _, b := range words {
			assert.Equal(t, LevenshteinDistance(a, b), LevenshteinDistance(b, a), "symmetry %q/%q", a, b)
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	m := NewMatcher(DefaultFuzzyMatchThreshold)

	tests := []struct {
		name        string
		text, query string
		want        float64
	}{
		{"empty text", "", "bague", 0},
		{"empty query", "Bague", "", 0},
		{"equal after normalization", "Bague Or", "bague or", 1},
		{"equal ignoring accents", "Émeraude", "emeraude", 1},
		{"prefix", "Bague Or 18K", "bague", 0.9},
		{"substring", "Collier Perle", "perle", 0.8},
		{"close typo", "collier", "colier", 1 - 1.0/7},
		{"unrelated", "bracelet", "montre", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.FuzzyMatch(tt.text, tt.query), 1e-9)
		})
	}
}

func TestFuzzyMatch_SelfIsOne(t *testing.T) {
	m := NewMatcher(0)
	for _, s := range []string{"or", "Bague Or 18K", "Créoles Argent", "x"} {
		assert.Equal(t, 1.0, m.FuzzyMatch(s, s), "input %q", s)
	}
}

func TestFuzzyMatch_CustomThreshold(t *testing.T) {
	strict := NewMatcher(0.9)
	assert.Equal(t, 0.0, strict.FuzzyMatch("collier", "colier"))
	assert.Equal(t, 0.9, strict.Threshold())

	assert.Equal(t, DefaultFuzzyMatchThreshold, NewMatcher(0).Threshold())
}

func TestMatchTokens(t *testing.T) {
	m := NewMatcher(DefaultFuzzyMatchThreshold)

	assert.Equal(t, 0.0, m.MatchTokens("Bague", nil))
	assert.Equal(t, 0.0, m.MatchTokens("", []string{"bague"}))
	assert.Equal(t, 0.0, m.MatchTokens("Bague", []string{"montre"}))

	// Best single token only.
	assert.InDelta(t, 0.9, m.MatchTokens("Bague Or 18K", []string{"bague"}), 1e-9)

	// 0.9 for "bague" plus 0.1 for the extra "18k" match.
	assert.InDelta(t, 1.0, m.MatchTokens("Bague Or 18K", []string{"bague", "18k"}), 1e-9)

	// Bonus is capped at 1.
	assert.InDelta(t, 1.0, m.MatchTokens("or jaune or blanc", []string{"or", "jaune", "blanc"}), 1e-9)

	// Non-matching tokens don't add a bonus.
	assert.InDelta(t, 0.8, m.MatchTokens("Collier Perle", []string{"perle", "montre"}), 1e-9)
}
