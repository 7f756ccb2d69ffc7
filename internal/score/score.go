// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the lexical relevance bonus added to a result's
// rank. The scoring is pure and deterministic: no I/O, no state.
package score

import "strings"

// isTokenSep reports whether r separates query tokens.
func isTokenSep(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '.', ':', ';', '!', '?':
		return true
	}
	return false
}

// Tokens splits a normalized query into tokens longer than one character.
func Tokens(query string) []string {
	var tokens []string
	for _, t := range strings.FieldsFunc(query, isTokenSep) {
		if len(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Lexical returns the relevance bonus for a title/snippet pair against a
// query. A verbatim title match scores 1.0; all query tokens appearing in
// the title scores 0.5; a title starting with the query adds 0.4; all
// tokens appearing in the snippet adds 0.35. There are no penalty terms.
func Lexical(title, snippet, query string) float64 {
	lowerTitle := strings.ToLower(title)
	lowerSnippet := strings.ToLower(snippet)
	lowerQuery := strings.TrimSpace(strings.ToLower(query))
	if lowerQuery == "" {
		return 0
	}

	tokens := Tokens(lowerQuery)

	var s float64
	if strings.Contains(lowerTitle, lowerQuery) {
		s += 1.0
	} else if len(tokens) > 1 && containsAll(lowerTitle, tokens) {
		s += 0.5
	}
	if strings.HasPrefix(lowerTitle, lowerQuery) {
		s += 0.4
	}
	if lowerSnippet != "" && len(tokens) > 1 && containsAll(lowerSnippet, tokens) {
		s += 0.35
	}
	return s
}

func containsAll(text string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}
