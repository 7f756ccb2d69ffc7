// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source implements the secondary-source adapters and the registry
// that fans queries out to them. Each adapter translates a generic search
// request into one source-specific HTTP protocol and normalizes the
// response; the registry never inspects the concrete kind.
package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// Options carries per-query knobs shared by all adapters.
type Options struct {
	// Limit caps results for this query; 0 falls back to the
	// descriptor's ResultsLimit, then to the variant default.
	Limit int
}

// Adapter searches a single secondary source. One implementation exists
// per source kind (mediawiki, meilisearch, custom), all exposing the same
// contract per the Strategy pattern.
type Adapter interface {
	ID() string
	Name() string
	Descriptor() *types.Descriptor

	// Search returns web-mode results. Errors are returned to the
	// registry, which absorbs them to an empty list; they never reach
	// the merger.
	Search(ctx context.Context, query, lang string, opts Options) ([]types.Result, error)

	// SearchImages is the image-mode analogue, valid only for adapters
	// whose descriptor declares image support.
	SearchImages(ctx context.Context, query, lang string, opts Options) ([]types.Result, error)
}

// Transformer converts a raw custom-backend response body into normalized
// results. It is an optional strategy supplied by the configuration
// loader and invoked only when present.
type Transformer interface {
	Transform(raw []byte, sourceName string, weight float64) ([]types.Result, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(raw []byte, sourceName string, weight float64) ([]types.Result, error)

// Transform calls f.
func (f TransformerFunc) Transform(raw []byte, sourceName string, weight float64) ([]types.Result, error) {
	return f(raw, sourceName, weight)
}

// New builds the adapter variant selected by the descriptor's type. The
// transformer applies to custom descriptors only and may be nil.
func New(desc *types.Descriptor, client *http.Client, httpCfg types.HTTPConfig, transformer Transformer) (Adapter, error) {
	if desc.ID == "" {
		return nil, fmt.Errorf("source descriptor missing id")
	}
	switch desc.Type {
	case types.SourceMediaWiki:
		return &mediaWikiAdapter{desc: desc, client: client, http: httpCfg}, nil
	case types.SourceMeiliSearch:
		return &meiliSearchAdapter{desc: desc, client: client, http: httpCfg}, nil
	case types.SourceCustom:
		return &customAdapter{desc: desc, client: client, http: httpCfg, transformer: transformer}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %q for %s", desc.Type, desc.ID)
	}
}
