package metadata

import (
	"sort"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

// Candidate pairs a search result with whatever descriptive text the
// source returned alongside it, for ranking before a full fetch.
type Candidate struct {
	Result      SearchResult
	Description string
}

// scoreFloor rejects candidates outright. An empty result is preferable
// to an obviously wrong one.
const scoreFloor = 0.35

// nonGameIndicators are phrases that mark a candidate as something other
// than a game. Ordered data, extensible without touching control flow.
var nonGameIndicators = []string{
	"city in",
	"town in",
	"film by",
	"film directed",
	"movie by",
	"novel by",
	"book by",
	"album by",
	"song by",
	"television series",
	"tv series",
	"episode of",
	"born in",
	"municipality",
	"surname",
	"given name",
	"genus of",
	"species of",
}

// gameIndicators are phrases that mark a candidate as a game.
var gameIndicators = []string{
	"video game",
	"videogame",
	"board game",
	"card game",
	"tabletop game",
	"game developed",
	"game published",
	"game released",
	"expansion pack",
	"downloadable content",
}

// ScoreCandidate scores how plausibly a candidate names the queried game.
// Exact normalized match beats a same-base-work match (edition qualifier
// stripped), which beats prefix/expansion, which beats substring;
// descriptions naming non-game things are penalized and game-domain
// descriptions boosted; shorter names break ties.
func ScoreCandidate(query string, c Candidate) float64 {
	nq := textnorm.Normalize(query)
	nn := textnorm.Normalize(c.Result.Name)
	if nq == "" || nn == "" {
		return 0
	}

	var score float64
	switch {
	case nn == nq:
		score = 1.0
	case sameBaseWork(query, c.Result.Name):
		score = 0.9
	case strings.HasPrefix(nn, nq):
		score = 0.8
	case strings.Contains(nn, nq):
		score = 0.6
	case textnorm.FuzzyMatch(nq, nn):
		score = 0.5
	default:
		score = textnorm.Similarity(nq, nn) * 0.5
	}

	desc := strings.ToLower(c.Description)
	if desc != "" {
		for _, phrase := range nonGameIndicators {
			if strings.Contains(desc, phrase) {
				score -= 0.4
				break
			}
		}
		for _, phrase := range gameIndicators {
			if strings.Contains(desc, phrase) {
				score += 0.2
				break
			}
		}
	}

	// Shorter names win ties: each extra rune costs a sliver.
	score -= float64(len(nn)) * 0.0005

	return score
}

// sameBaseWork reports whether two titles name the same base work once
// their edition qualifiers are stripped, so "Skyrim" and "Skyrim -
// Special Edition" resolve to one record.
func sameBaseWork(a, b string) bool {
	ba := textnorm.Normalize(textnorm.ExtractEdition(a).BaseName)
	bb := textnorm.Normalize(textnorm.ExtractEdition(b).BaseName)
	return ba != "" && ba == bb
}

// BestCandidate ranks candidates against the query and returns the best
// one, or false if every candidate scores below the floor.
func BestCandidate(query string, candidates []Candidate) (Candidate, bool) {
	var (
		best      Candidate
		bestScore = scoreFloor
		found     bool
	)
	for _, c := range candidates {
		if s := ScoreCandidate(query, c); s > bestScore {
			best = c
			bestScore = s
			found = true
		}
	}
	return best, found
}

// RankCandidates scores every candidate against the query, drops those
// below the floor, and returns the survivors best-first.
func RankCandidates(query string, candidates []Candidate) []SearchResult {
	type scored struct {
		result SearchResult
		score  float64
	}
	kept := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if s := ScoreCandidate(query, c); s > scoreFloor {
			kept = append(kept, scored{c.Result, s})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	out := make([]SearchResult, len(kept))
	for i, s := range kept {
		out[i] = s.result
	}
	return out
}

// DedupeSearchResults removes later results whose trimmed name matches an
// earlier one case-insensitively. First occurrence wins, preserving the
// fallback order that produced the slice.
func DedupeSearchResults(results []SearchResult) []SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// SortSearchResults orders candidates for a human picker: exact
// normalized match first, then prefix matches, then shorter names.
func SortSearchResults(query string, results []SearchResult) {
	nq := textnorm.Normalize(query)
	rank := func(r SearchResult) int {
		nn := textnorm.Normalize(r.Name)
		switch {
		case nn == nq:
			return 0
		case strings.HasPrefix(nn, nq):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := rank(results[i]), rank(results[j])
		if ri != rj {
			return ri < rj
		}
		return len(results[i].Name) < len(results[j].Name)
	})
}
