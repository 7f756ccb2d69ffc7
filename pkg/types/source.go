// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceType identifies the protocol a secondary source speaks.
type SourceType string

const (
	SourceMediaWiki   SourceType = "mediawiki"
	SourceMeiliSearch SourceType = "meilisearch"
	SourceCustom      SourceType = "custom"
)

// SemanticSearch enables MeiliSearch hybrid (keyword + vector) queries.
type SemanticSearch struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// SemanticRatio balances vector against keyword matching (default 0.75).
	SemanticRatio float64 `json:"semanticRatio" yaml:"semanticRatio"`
}

// ImageSearch holds image-mode parameters for sources that support it.
type ImageSearch struct {
	// ExcludeCategories lists wiki categories filtered out of image
	// results via negative category clauses.
	ExcludeCategories []string `json:"excludeCategories" yaml:"excludeCategories"`
}

// Descriptor configures one secondary source. Descriptors are constructed
// once at startup from the external configuration and are read-only to the
// core; the registry holds one adapter per descriptor for the process
// lifetime.
type Descriptor struct {
	// ID uniquely identifies the source within the registry.
	ID string `json:"id" yaml:"id"`

	// Name is the human label attached to every result from this source.
	Name string `json:"name" yaml:"name"`

	// Type selects the adapter variant: mediawiki, meilisearch, or custom.
	Type SourceType `json:"type" yaml:"type"`

	// Enabled defaults to true when omitted.
	Enabled *bool `json:"enabled" yaml:"enabled"`

	// Weight is the source-level ranking prior (default 0.5).
	Weight float64 `json:"weight" yaml:"weight"`

	// APIURL and BaseURL are templates; "{lang}" is substituted per query.
	APIURL  string `json:"apiUrl" yaml:"apiUrl"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// ArticlePath is the path prefix for article links (default "/wiki/").
	ArticlePath string `json:"articlePath" yaml:"articlePath"`

	// ResultsLimit caps results per query (default 5).
	ResultsLimit int `json:"resultsLimit" yaml:"resultsLimit"`

	// SupportsWeb defaults to true; SupportsImages defaults to false.
	SupportsWeb    *bool `json:"supportsWeb" yaml:"supportsWeb"`
	SupportsImages bool  `json:"supportsImages" yaml:"supportsImages"`

	// FetchThumbnails enables the batched thumbnail lookup (mediawiki).
	FetchThumbnails bool `json:"fetchThumbnails" yaml:"fetchThumbnails"`

	// ThumbnailSize is the requested thumbnail width in pixels (default 200).
	ThumbnailSize int `json:"thumbnailSize" yaml:"thumbnailSize"`

	// SearchParams are extra query-string parameters merged into the
	// mediawiki search call.
	SearchParams map[string]string `json:"searchParams" yaml:"searchParams"`

	// ImageSearch must be set for a source to serve image queries.
	ImageSearch *ImageSearch `json:"imageSearch" yaml:"imageSearch"`

	// MeiliSearch parameters.
	IndexName             string          `json:"indexName" yaml:"indexName"`
	APIKey                string          `json:"apiKey" yaml:"apiKey"`
	AttributesToRetrieve  []string        `json:"attributesToRetrieve" yaml:"attributesToRetrieve"`
	AttributesToHighlight []string        `json:"attributesToHighlight" yaml:"attributesToHighlight"`
	AttributesToCrop      []string        `json:"attributesToCrop" yaml:"attributesToCrop"`
	CropLength            int             `json:"cropLength" yaml:"cropLength"`
	MatchingStrategy      string          `json:"matchingStrategy" yaml:"matchingStrategy"`
	Filter                string          `json:"filter" yaml:"filter"`
	SemanticSearch        *SemanticSearch `json:"semanticSearch" yaml:"semanticSearch"`

	// Custom-HTTP parameters. APIURL doubles as the URL template with
	// "{query}", "{lang}" and "{limit}" placeholders.
	Method       string            `json:"method" yaml:"method"`
	Headers      map[string]string `json:"headers" yaml:"headers"`
	Body         string            `json:"body" yaml:"body"`
	ResultsPath  string            `json:"resultsPath" yaml:"resultsPath"`
	TitleField   string            `json:"titleField" yaml:"titleField"`
	LinkField    string            `json:"linkField" yaml:"linkField"`
	SnippetField string            `json:"snippetField" yaml:"snippetField"`
	UseHybrid    bool              `json:"use_hybrid" yaml:"use_hybrid"`

	// Primary-query exclusion: domains appended as negative site filters
	// so the primary API does not duplicate this source's coverage.
	ExcludeFromPrimary *bool    `json:"excludeFromGoogle" yaml:"excludeFromGoogle"`
	ExcludeDomains     []string `json:"excludeDomains" yaml:"excludeDomains"`
}

// IsEnabled reports the effective enabled state (omitted means enabled).
func (d *Descriptor) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// WebCapable reports whether the source serves web-mode queries.
func (d *Descriptor) WebCapable() bool {
	return d.SupportsWeb == nil || *d.SupportsWeb
}

// EffectiveWeight returns the configured weight or the 0.5 default.
func (d *Descriptor) EffectiveWeight() float64 {
	if d.Weight == 0 {
		return 0.5
	}
	return d.Weight
}

// ExcludedFromPrimary reports whether this source's domains should be
// filtered out of primary-API queries (omitted means excluded).
func (d *Descriptor) ExcludedFromPrimary() bool {
	return d.ExcludeFromPrimary == nil || *d.ExcludeFromPrimary
}
