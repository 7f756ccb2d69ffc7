// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package panel selects and fetches encyclopedia knowledge panels. A panel
// is shown only when one candidate article clearly matches the query;
// otherwise the feature declines rather than risk an off-topic panel.
package panel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchThreshold is the minimum score a candidate needs before a panel is
// shown. Below it the selector declines.
const MatchThreshold = 15.0

// Candidate is one article considered for the panel. The snippet comes
// from the encyclopedia's search endpoint.
type Candidate struct {
	Title   string
	Snippet string
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases, strips accents, and maps everything outside
// [a-z0-9] and whitespace to a space, so "États-Unis" compares equal to
// "etats unis".
func normalizeText(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(accentStripper, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stem strips common French suffixes from the end of a word or phrase.
// The rules apply in sequence to the result of the previous rule, so
// "chateaux" loses its "x" and "formation" its "tion" ending.
func stem(w string) string {
	w = strings.TrimSuffix(w, "s")
	w = strings.TrimSuffix(w, "x")
	if strings.HasSuffix(w, "aux") {
		w = strings.TrimSuffix(w, "aux") + "al"
	}
	if strings.HasSuffix(w, "eux") {
		w = strings.TrimSuffix(w, "eux") + "eu"
	}
	w = strings.TrimSuffix(w, "tion")
	w = strings.TrimSuffix(w, "ment")
	w = strings.TrimSuffix(w, "able")
	w = strings.TrimSuffix(w, "ible")
	return w
}

// queryWords returns the scorable query words. Short words (articles,
// prepositions) carry no signal and are skipped.
func queryWords(queryNorm string) []string {
	var words []string
	for _, w := range strings.Fields(queryNorm) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// scoreCandidate rates how well a candidate article answers the query.
// Title matches are checked on both the plain and stemmed forms, and the
// exact/contains/prefix awards stack, so an exact title dominates.
func scoreCandidate(c Candidate, query string) float64 {
	titleNorm := normalizeText(c.Title)
	queryNorm := normalizeText(query)
	if titleNorm == "" || queryNorm == "" {
		return 0
	}
	titleStemmed := stem(titleNorm)
	queryStemmed := stem(queryNorm)

	var score float64
	if titleNorm == queryNorm || titleStemmed == queryStemmed {
		score += 100
	}
	if strings.Contains(titleNorm, queryNorm) || strings.Contains(titleStemmed, queryStemmed) {
		score += 50
	}
	if strings.HasPrefix(titleNorm, queryNorm) || strings.HasPrefix(titleStemmed, queryStemmed) {
		score += 30
	}

	words := queryWords(queryNorm)
	found := 0
	for _, w := range words {
		if strings.Contains(titleNorm, w) || strings.Contains(titleStemmed, stem(w)) {
			found++
		}
	}
	score += float64(found) * 10
	if len(words) > 1 && found == len(words) {
		score += 25
	}

	if len(titleNorm) > 3*len(queryNorm) {
		score -= 5
	}

	if c.Snippet != "" {
		snippetNorm := normalizeText(c.Snippet)
		for _, w := range words {
			if strings.Contains(snippetNorm, w) || strings.Contains(snippetNorm, stem(w)) {
				score += 2
			}
		}
	}
	return score
}

// BestMatch returns the index of the best-scoring candidate, or -1 when no
// candidate clears the threshold.
func BestMatch(candidates []Candidate, query string) int {
	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		if s := scoreCandidate(c, query); s > bestScore {
			best, bestScore = i, s
		}
	}
	if bestScore < MatchThreshold {
		return -1
	}
	return best
}
