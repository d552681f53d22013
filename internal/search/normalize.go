package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StopWords is a set of tokens ignored when splitting a query into terms.
type StopWords map[string]struct{}

// NewStopWords builds a stop-word set from the given words.
func NewStopWords(words ...string) StopWords {
	sw := make(StopWords, len(words))
	for _, w := range words {
		sw[w] = struct{}{}
	}
	return sw
}

// DefaultStopWords returns the French/English stop words used by the storefront.
func DefaultStopWords() StopWords {
	return NewStopWords(
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou",
		"en", "pour", "avec", "sans", "dans", "sur", "a", "au", "aux",
		"the", "an", "and", "or", "in", "on", "for", "with", "to",
	)
}

// Contains reports whether word is a stop word.
func (sw StopWords) Contains(word string) bool {
	_, ok := sw[word]
	return ok
}

// NormalizeQuery folds diacritics and case and collapses whitespace:
// "  Bague   ÉLÉGANTE " becomes "bague elegante".
func NormalizeQuery(s string) string {
	if s == "" {
		return ""
	}

	// A transform.Transformer carries state, so build one per call.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Tokenize splits a normalized query into significant terms. Single-character
// tokens and stop words are dropped; order is preserved.
func Tokenize(normalized string, stopWords StopWords) []string {
	if normalized == "" {
		return nil
	}

	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if utf8.RuneCountInString(p) <= 1 {
			continue
		}
		if stopWords.Contains(p) {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}
