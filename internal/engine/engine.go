// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates one search: cache lookup, concurrent
// primary and secondary queries, merging, and quota accounting.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/laurentftech/kidsearch/internal/cache"
	"github.com/laurentftech/kidsearch/internal/history"
	"github.com/laurentftech/kidsearch/internal/merge"
	"github.com/laurentftech/kidsearch/internal/primary"
	"github.com/laurentftech/kidsearch/internal/source"
	"github.com/laurentftech/kidsearch/pkg/types"
)

// defaultPageSize is the primary API page stride; a full primary page
// implies more pages exist.
const defaultPageSize = 10

// ErrUnavailable is returned when no backend produced anything. The
// message is shown to children as-is.
var ErrUnavailable = errors.New("le moteur de recherche fait une pause, réessaie dans un instant")

// Primary is the broad web backend.
type Primary interface {
	Enabled() bool
	Search(ctx context.Context, q primary.Query) (*primary.Response, error)
}

// Sources is the secondary source registry.
type Sources interface {
	SearchAll(ctx context.Context, query, lang string, opts source.Options) [][]types.Result
	SearchAllImages(ctx context.Context, query, lang string, opts source.Options) [][]types.Result
	ConfigSignature() string
	ImageConfigSignature() string
	ExcludedDomains(mode types.Mode, lang string) []string
}

// Recorder logs completed searches.
type Recorder interface {
	Record(e history.Entry) error
}

// Engine runs the aggregation pipeline.
type Engine struct {
	primary Primary
	sources Sources

	webCache   *cache.Cache
	imageCache *cache.Cache
	quota      *cache.Quota

	// recorder may be nil when history is disabled.
	recorder Recorder

	cfg      types.SearchConfig
	pageSize int
	log      io.Writer
}

// Options configures optional engine collaborators.
type Options struct {
	Recorder Recorder
	Log      io.Writer
}

// New assembles an engine from its collaborators.
func New(p Primary, s Sources, webCache, imageCache *cache.Cache, quota *cache.Quota, cfg types.SearchConfig, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = io.Discard
	}
	pageSize := cfg.ResultsPerPage
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Engine{
		primary:    p,
		sources:    s,
		webCache:   webCache,
		imageCache: imageCache,
		quota:      quota,
		recorder:   opts.Recorder,
		cfg:        cfg,
		pageSize:   pageSize,
		log:        log,
	}
}

// Request is one search request.
type Request struct {
	Query string

	// Page is 1-based; pages beyond the first query the primary API only.
	Page int

	// Sort is passed to the primary API when set (web mode only).
	Sort string

	Mode types.Mode

	// Lang overrides language detection when set.
	Lang string
}

// Search runs the pipeline for one request. Results come from the cache
// when a fresh entry exists; otherwise the primary API and, on the first
// page, every secondary source are queried concurrently and their output
// merged. Individual backend failures degrade the result set instead of
// failing the search.
func (e *Engine) Search(ctx context.Context, req Request) (*types.SearchData, error) {
	query := CleanQuery(req.Query)
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	lang := req.Lang
	if lang == "" {
		lang = DetectLanguage(query, e.cfg.DefaultLanguage)
	}

	c, signature := e.cacheFor(req.Mode)
	sort := req.Sort
	if req.Mode == types.ModeImages {
		sort = ""
	}
	if data := c.Get(query, page, sort, signature); data != nil {
		return data, nil
	}

	var (
		wg         sync.WaitGroup
		primaryRes *primary.Response
		primaryErr error
		secondary  [][]types.Result
	)

	usePrimary := e.primary != nil && e.primary.Enabled()
	if usePrimary {
		wg.Add(1)
		go func() {
			defer wg.Done()
			primaryRes, primaryErr = e.primary.Search(ctx, primary.Query{
				Text:           query,
				Lang:           lang,
				Page:           page,
				Sort:           sort,
				Mode:           req.Mode,
				ExcludeDomains: e.sources.ExcludedDomains(req.Mode, lang),
			})
		}()
	}

	// Secondary sources have no pagination; they contribute to the first
	// page only.
	if page == 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if req.Mode == types.ModeImages {
				secondary = e.sources.SearchAllImages(ctx, query, lang, source.Options{})
			} else {
				secondary = e.sources.SearchAll(ctx, query, lang, source.Options{})
			}
		}()
	}
	wg.Wait()

	var primaryItems []types.Result
	totalResults := ""
	if usePrimary {
		if primaryErr != nil {
			fmt.Fprintf(e.log, "warning: primary search failed: %v\n", primaryErr)
		} else {
			primaryItems = primaryRes.Items
			totalResults = primaryRes.TotalResults
			e.quota.RecordRequest()
		}
	}

	merged := merge.Merge(primaryItems, secondary, query, req.Mode)
	if len(merged) == 0 && primaryErr != nil {
		return nil, ErrUnavailable
	}

	data := &types.SearchData{
		Items:             merged,
		SearchInformation: types.SearchInformation{TotalResults: totalResults},
		GoogleItems:       len(primaryItems),
		HasMorePages:      len(primaryItems) >= e.pageSize || len(merged) >= e.pageSize,
	}
	c.Set(query, page, data, sort, signature)

	if e.recorder != nil {
		err := e.recorder.Record(history.Entry{
			Query:       query,
			Mode:        req.Mode,
			Lang:        lang,
			ResultCount: len(merged),
			UsedPrimary: usePrimary && primaryErr == nil,
		})
		if err != nil {
			fmt.Fprintf(e.log, "warning: could not record search: %v\n", err)
		}
	}
	return data, nil
}

// cacheFor returns the cache and source signature for a mode.
func (e *Engine) cacheFor(mode types.Mode) (*cache.Cache, string) {
	if mode == types.ModeImages {
		return e.imageCache, e.sources.ImageConfigSignature()
	}
	return e.webCache, e.sources.ConfigSignature()
}

// Quota reports today's primary API usage.
func (e *Engine) Quota() cache.Usage {
	return e.quota.GetUsage()
}

// CacheStats reports the state of both result caches.
func (e *Engine) CacheStats() (web, images cache.Stats) {
	return e.webCache.Stats(), e.imageCache.Stats()
}

// CleanQuery trims the query and drops anything after a question mark, so
// full questions ("c'est quoi un volcan ?") search on their subject text.
func CleanQuery(q string) string {
	if i := strings.IndexByte(q, '?'); i >= 0 {
		q = q[:i]
	}
	return strings.TrimSpace(q)
}
