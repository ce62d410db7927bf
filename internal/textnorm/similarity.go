// Package textnorm provides text normalization utilities for matching
// free-text title and platform names against catalog records.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes runes and drops combining marks, so
// "Pokémon" and "Pokemon" normalize identically.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize prepares a string for comparison: lower-cases, strips
// diacritics and apostrophes, converts dashes to spaces and ampersands to
// "and", drops remaining punctuation, and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			// Dropped entirely, so "Assassin's" matches "Assassins".
		case r == '-' || r == '–' || r == '—' || r == '_' || r == '/' || r == ':':
			b.WriteRune(' ')
		case r == '&':
			b.WriteString(" and ")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// LevenshteinDistance computes the edit distance between two strings.
func LevenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity scores how alike two strings are after normalization,
// as 1 - distance/maxLen. Two empty strings are identical by definition.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1
	}

	maxLen := max(len([]rune(na)), len([]rune(nb)))
	if maxLen == 0 {
		return 1
	}

	dist := LevenshteinDistance(na, nb)
	return 1 - float64(dist)/float64(maxLen)
}

// FuzzyMatch reports whether target plausibly names the same thing as
// query. A match requires either normalized substring containment, or every
// query word being a substring or superstring of some target word.
func FuzzyMatch(query, target string) bool {
	nq, nt := Normalize(query), Normalize(target)
	if nq == "" || nt == "" {
		return false
	}

	if strings.Contains(nt, nq) {
		return true
	}

	targetWords := strings.Fields(nt)
	for _, qw := range strings.Fields(nq) {
		matched := false
		for _, tw := range targetWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func minOf(a, b, c int) int {
	return min(a, min(b, c))
}
