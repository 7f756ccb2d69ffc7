// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "strings"

// Common function words used as language evidence. Short queries rarely
// contain more than one or two of them, so a single hit counts.
var (
	frenchHints = wordSet("le la les de des du un une et est pour qui que quoi comment pourquoi avec sur dans")

	englishHints = wordSet("the of and a an is are what how why to in who where when which")
)

// frenchMarks are letters that only appear in French text among the two
// supported languages.
const frenchMarks = "àâéèêëîïôùûüç"

// DetectLanguage guesses the query language between French and English.
// Accented characters decide immediately; otherwise function words are
// counted and the fallback wins ties.
func DetectLanguage(query, fallback string) string {
	if fallback == "" {
		fallback = "fr"
	}

	q := strings.ToLower(query)
	if strings.ContainsAny(q, frenchMarks) {
		return "fr"
	}

	var fr, en int
	for _, w := range strings.Fields(q) {
		if frenchHints[w] {
			fr++
		}
		if englishHints[w] {
			en++
		}
	}
	switch {
	case fr > en:
		return "fr"
	case en > fr:
		return "en"
	}
	return fallback
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
