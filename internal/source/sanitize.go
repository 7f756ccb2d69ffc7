// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"regexp"
	"strings"
)

// spanTagRe strips the highlight <span> wrappers search APIs use to mark
// matched terms.
var spanTagRe = regexp.MustCompile(`</?span[^>]*>`)

// StripHighlightTags returns the plain-text form of a marked-up snippet.
func StripHighlightTags(s string) string {
	return spanTagRe.ReplaceAllString(s, "")
}

// Wiki markup artifacts that leak into raw excerpts from custom backends.
var (
	wikiTemplateRe = regexp.MustCompile(`\{\{[^}]*\}\}`)
	wikiLinkRe     = regexp.MustCompile(`\[\[(?:[^|\]]+\|)?([^\]]+)\]\]`)
	wikiBoldRe     = regexp.MustCompile(`'''([^']+)'''`)
	wikiItalicRe   = regexp.MustCompile(`''([^']+)''`)
	wikiFileRe     = regexp.MustCompile(`(?i)\[\[(?:Fichier|File|Image):[^\]]+\]\]`)
	wikiThumbRe    = regexp.MustCompile(`thumb\|[^\]]+`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	wikiSectionRe  = regexp.MustCompile(`={2,}\s*([^=]+)\s*={2,}`)
	strayBracketRe = regexp.MustCompile(`\[\[|\]\]|\[|\]`)
	strayPipeRe    = regexp.MustCompile(`\|\s*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

const (
	minSnippetLen = 20
	maxSnippetLen = 300
)

// CleanWikiSnippet strips wiki markup artifacts from a raw excerpt:
// templates, wiki links, bold/italic markers, file references, HTML tags,
// section markers, and leftover brackets and pipes. When the cleaned text
// ends up shorter than 20 characters a fallback sentence built from the
// title and site is returned instead; text longer than 300 characters is
// truncated with an ellipsis.
func CleanWikiSnippet(raw, title, site string) string {
	s := wikiFileRe.ReplaceAllString(raw, "")
	s = wikiTemplateRe.ReplaceAllString(s, "")
	s = wikiLinkRe.ReplaceAllString(s, "$1")
	s = wikiBoldRe.ReplaceAllString(s, "$1")
	s = wikiItalicRe.ReplaceAllString(s, "$1")
	s = wikiThumbRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = wikiSectionRe.ReplaceAllString(s, "$1")
	s = strayBracketRe.ReplaceAllString(s, "")
	s = strayPipeRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")

	// Length limits count runes, not bytes; accented text must not be
	// split mid-rune.
	runes := []rune(s)
	if len(runes) < minSnippetLen {
		if site == "" {
			site = "le site"
		}
		return fmt.Sprintf("Découvrez l'article %q sur %s.", title, site)
	}
	if len(runes) > maxSnippetLen {
		return string(runes[:maxSnippetLen-3]) + "..."
	}
	return s
}
