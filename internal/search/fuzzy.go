package search

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultFuzzyMatchThreshold is the similarity a fuzzy hit must exceed to count.
	DefaultFuzzyMatchThreshold = 0.5

	// DefaultSuggestionThreshold is the similarity a type-ahead hit must exceed.
	DefaultSuggestionThreshold = 0.6

	containsScore = 0.8
	prefixBonus   = 0.1
	tokenBonus    = 0.1
)

// LevenshteinDistance returns the edit distance between a and b, counting
// insertions, deletions and substitutions at cost 1. Runes, not bytes, are compared.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	matrix := make([][]int, len(rb)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(ra)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1], // substitution
				matrix[i][j-1],   // insertion
				matrix[i-1][j],   // deletion
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}

// Matcher scores approximate string matches. Similarities at or below the
// threshold are reported as 0.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher. A non-positive threshold selects the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultFuzzyMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the similarity cutoff in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// FuzzyMatch returns a similarity in [0,1] between text and query:
// 1 on equality, 0.9 for a prefix, 0.8 for a substring, otherwise the
// normalized edit-distance similarity when it clears the threshold.
func (m *Matcher) FuzzyMatch(text, query string) float64 {
	if text == "" || query == "" {
		return 0
	}

	t := NormalizeQuery(text)
	q := NormalizeQuery(query)
	if t == "" || q == "" {
		return 0
	}

	if t == q {
		return 1
	}

	if strings.Contains(t, q) {
		if strings.HasPrefix(t, q) {
			return containsScore + prefixBonus
		}
		return containsScore
	}

	maxLen := max(utf8.RuneCountInString(t), utf8.RuneCountInString(q))
	similarity := 1 - float64(LevenshteinDistance(t, q))/float64(maxLen)
	if similarity > m.threshold {
		return similarity
	}
	return 0
}

// MatchTokens scores how well text matches a set of query tokens: the best
// single-token score plus 0.1 for each additional matching token, capped at 1.
func (m *Matcher) MatchTokens(text string, tokens []string) float64 {
	if text == "" || len(tokens) == 0 {
		return 0
	}

	var best float64
	matched := 0
	for _, token := range tokens {
		score := m.FuzzyMatch(text, token)
		if score > m.threshold {
			matched++
			best = max(best, score)
		}
	}

	if matched == 0 {
		return 0
	}
	return min(1, best+tokenBonus*float64(matched-1))
}
