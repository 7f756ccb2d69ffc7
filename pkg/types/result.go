// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the kidsearch pipeline.
// A Result is the normalized, source-agnostic representation of one search
// hit; every adapter and the primary client produce Results, and the merger,
// caches, and server consume them.
package types

// Mode selects web or image search. The two modes use separate caches and
// separate source capability sets.
type Mode string

const (
	ModeWeb    Mode = "web"
	ModeImages Mode = "images"
)

// Thumbnail is one preview image attached to a web result.
type Thumbnail struct {
	Src string `json:"src" yaml:"src"`
}

// Pagemap carries web-mode thumbnail metadata in the primary API's wire
// shape so secondary sources and the primary API render identically.
type Pagemap struct {
	CSEThumbnail []Thumbnail `json:"cse_thumbnail,omitempty" yaml:"cse_thumbnail,omitempty"`
}

// Image holds image-mode metadata. ContextLink points at the page the image
// appears on and is the preferred dedup identity, since direct links for
// the same picture often point at varying CDN hosts.
type Image struct {
	ContextLink   string `json:"contextLink" yaml:"contextLink"`
	ThumbnailLink string `json:"thumbnailLink" yaml:"thumbnailLink"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
}

// Result represents a single normalized search hit.
type Result struct {
	// Title is the result title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Link is the fully-qualified URL of the result. Adapters never emit
	// relative links; results without a resolvable URL are dropped by the
	// merger.
	Link string `json:"link" yaml:"link"`

	// DisplayLink is the host label shown in the UI (e.g. "fr.vikidia.org").
	DisplayLink string `json:"displayLink" yaml:"displayLink"`

	// Snippet is the plain-text excerpt; HTMLSnippet keeps the source's
	// highlight markup for sanitized rendering.
	Snippet     string `json:"snippet" yaml:"snippet"`
	HTMLSnippet string `json:"htmlSnippet,omitempty" yaml:"htmlSnippet,omitempty"`

	// Source is the human label of the originating adapter (e.g. "Vikidia").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Weight is the source-level prior, set once by the owning adapter.
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`

	// OriginalIndex is the 0-based rank within the origin list. The merger
	// uses it as the tie-break so each source's internal order survives.
	OriginalIndex int `json:"originalIndex" yaml:"originalIndex"`

	// CalculatedWeight is the final score assigned by the merger,
	// write-once per merge pass.
	CalculatedWeight float64 `json:"calculatedWeight" yaml:"calculatedWeight"`

	// Image is set in image mode only.
	Image *Image `json:"image,omitempty" yaml:"image,omitempty"`

	// Pagemap carries the web-mode thumbnail, when the source provides one.
	Pagemap *Pagemap `json:"pagemap,omitempty" yaml:"pagemap,omitempty"`
}

// SearchInformation mirrors the primary API's result-count envelope.
type SearchInformation struct {
	TotalResults string `json:"totalResults" yaml:"totalResults"`
}

// SearchData is one merged, ranked result page: the unit stored in the
// caches and returned to the rendering collaborator.
type SearchData struct {
	Items             []Result          `json:"items" yaml:"items"`
	SearchInformation SearchInformation `json:"searchInformation" yaml:"searchInformation"`

	// GoogleItems counts how many items the primary API contributed,
	// before merging. Drives the pagination heuristic.
	GoogleItems int `json:"googleItemsCount" yaml:"googleItemsCount"`

	// HasMorePages reports whether a further page is likely to exist.
	HasMorePages bool `json:"hasMorePages" yaml:"hasMorePages"`
}

// Panel is a knowledge-panel summary for a likely-encyclopedic query.
type Panel struct {
	Title     string `json:"title" yaml:"title"`
	Extract   string `json:"extract" yaml:"extract"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	URL       string `json:"url" yaml:"url"`
	Source    string `json:"source" yaml:"source"`
}
