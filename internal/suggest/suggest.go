// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest serves autocomplete suggestions from curated
// per-language word lists. Everything is loaded once at startup; lookups
// are substring matches over the in-memory list.
package suggest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// maxSuggestions caps the response size.
const maxSuggestions = 8

// suggestFile is the on-disk shape: a map of language code to word list.
type suggestFile struct {
	Suggestions map[string][]string `json:"suggestions" yaml:"suggestions"`
}

// Provider answers autocomplete lookups.
type Provider struct {
	byLang map[string][]string
}

// Load reads the suggestion lists from path. An empty path or a missing
// file yields an empty provider that suggests nothing.
func Load(path string) (*Provider, error) {
	p := &Provider{byLang: map[string][]string{}}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading suggestions file %s: %w", path, err)
	}

	var f suggestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing suggestions file %s: %w", path, err)
	}
	if f.Suggestions != nil {
		p.byLang = f.Suggestions
	}
	return p, nil
}

// For returns up to eight suggestions containing the prefix, case
// insensitively. Entries that start with the prefix rank before entries
// that merely contain it.
func (p *Provider) For(prefix, lang string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	words := p.byLang[lang]
	var starts, contains []string
	for _, w := range words {
		lw := strings.ToLower(w)
		switch {
		case strings.HasPrefix(lw, prefix):
			starts = append(starts, w)
		case strings.Contains(lw, prefix):
			contains = append(contains, w)
		}
	}

	out := append(starts, contains...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Languages lists the language codes with a configured word list.
func (p *Provider) Languages() []string {
	langs := make([]string, 0, len(p.byLang))
	for l := range p.byLang {
		langs = append(langs, l)
	}
	return langs
}
