package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "HADES", "hades"},
		{"strips apostrophes", "Assassin's Creed", "assassins creed"},
		{"dashes to spaces", "Spider-Man", "spider man"},
		{"ampersand to and", "Ratchet & Clank", "ratchet and clank"},
		{"collapses whitespace", "  The   Witcher  ", "the witcher"},
		{"strips diacritics", "Pokémon", "pokemon"},
		{"drops punctuation", "Doom: Eternal!", "doom eternal"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	// Identity on any non-empty string.
	assert.Equal(t, 1.0, Similarity("Hades", "Hades"))
	assert.Equal(t, 1.0, Similarity("Hades", "HADES"))

	// Empty against empty is defined and does not divide by zero.
	assert.Equal(t, 1.0, Similarity("", ""))

	// Near-misses score high, unrelated strings score low.
	assert.Greater(t, Similarity("The Witcher 3", "The Witcher 3: Wild Hunt"), 0.5)
	assert.Less(t, Similarity("Hades", "Stardew Valley"), 0.4)
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   bool
	}{
		{"substring containment", "witcher", "The Witcher 3: Wild Hunt", true},
		{"exact", "Hades", "Hades", true},
		{"word superstring", "assassins creed", "Assassin's Creed Odyssey", true},
		{"punctuation ignored", "ratchet and clank", "Ratchet & Clank", true},
		{"unrelated", "halo", "Stardew Valley", false},
		{"empty query", "", "Hades", false},
		{"empty target", "Hades", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FuzzyMatch(tt.query, tt.target))
		})
	}
}
