package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"case and spaces", "  Bague   ÉLÉGANTE ", "bague elegante"},
		{"french diacritics", "Boucles d'Oreilles Émeraude", "boucles d'oreilles emeraude"},
		{"cedilla and grave", "Çà et là", "ca et la"},
		{"diaeresis", "Naïve Noël", "naive noel"},
		{"tabs and newlines", "or\tjaune\n18k", "or jaune 18k"},
		{"already normalized", "collier perle", "collier perle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.input))
		})
	}
}

func TestNormalizeQuery_Idempotent(t *testing.T) {
	inputs := []string{
		"", "Bague Or 18K", "  ÉCLAT  de   Lune ", "İstanbul", "Œuvre d'Art",
		"café crème", "ÀÂÄÉÈÊËÎÏÔÖÙÛÜŸÇ", "ring  WITH   diamond",
	}

	for _, s := range inputs {
		once := NormalizeQuery(s)
		assert.Equal(t, once, NormalizeQuery(once), "input %q", s)
	}
}

func TestTokenize_DropsStopWordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("bague en or pour femme", DefaultStopWords())
	assert.Equal(t, []string{"bague", "femme"}, tokens)

	tokens = Tokenize("a b cd", DefaultStopWords())
	assert.Equal(t, []string{"cd"}, tokens)

	tokens = Tokenize("ring with the diamond", DefaultStopWords())
	assert.Equal(t, []string{"ring", "diamond"}, tokens)
}

func TestTokenize_PreservesOrder(t *testing.T) {
	tokens := Tokenize("saphir rubis emeraude", DefaultStopWords())
	assert.Equal(t, []string{"saphir", "rubis", "emeraude"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize("", DefaultStopWords()))
}

func TestTokenize_CustomStopWords(t *testing.T) {
	tokens := Tokenize("bague or", NewStopWords("bague"))
	assert.Equal(t, []string{"or"}, tokens)
}

func TestStopWords_Contains(t *testing.T) {
	sw := DefaultStopWords()
	assert.True(t, sw.Contains("avec"))
	assert.True(t, sw.Contains("with"))
	assert.False(t, sw.Contains("bague"))
}
