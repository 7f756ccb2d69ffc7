// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/laurentftech/kidsearch/internal/source"
	"github.com/laurentftech/kidsearch/pkg/types"
)

const (
	defaultSourceName    = "Vikidia"
	defaultThumbnailSize = 300
	defaultExtractLength = 400
	candidateLimit       = 3
)

// Fetcher looks up knowledge panels against a MediaWiki encyclopedia.
type Fetcher struct {
	cfg    types.PanelConfig
	client *http.Client
}

// NewFetcher returns a panel fetcher for the configured encyclopedia.
func NewFetcher(cfg types.PanelConfig, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{cfg: cfg, client: client}
}

// Fetch returns the panel for a query, or nil when no candidate article
// matches well enough. Only a clear winner produces a panel.
func (f *Fetcher) Fetch(ctx context.Context, query, lang string) (*types.Panel, error) {
	if !f.cfg.Enabled {
		return nil, nil
	}

	apiURL := strings.ReplaceAll(f.cfg.APIURL, "{lang}", lang)
	baseURL := strings.ReplaceAll(f.cfg.BaseURL, "{lang}", lang)

	candidates, err := f.searchCandidates(ctx, apiURL, query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Score the search hits first; only the winner gets a second lookup.
	best := BestMatch(candidates, query)
	if best < 0 {
		return nil, nil
	}

	page, err := f.fetchExtract(ctx, apiURL, candidates[best].Title)
	if err != nil {
		return nil, err
	}

	extract := truncateExtract(page.Extract, f.cfg.ExtractLength)
	if extract == "" {
		return nil, nil
	}

	sourceName := f.cfg.SourceName
	if sourceName == "" {
		sourceName = defaultSourceName
	}

	p := &types.Panel{
		Title:   page.Title,
		Extract: extract,
		URL:     articleLink(baseURL, page.Title),
		Source:  sourceName,
	}
	if !f.cfg.DisableThumbnails && page.Thumbnail != "" {
		p.Thumbnail = source.FixHotlinkURL(page.Thumbnail)
	}
	return p, nil
}

// searchCandidates returns the top search hits (title plus snippet) for
// the query.
func (f *Fetcher) searchCandidates(ctx context.Context, apiURL, query string) ([]Candidate, error) {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(candidateLimit)},
		"origin":   {"*"},
	}

	var resp struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := f.getJSON(ctx, apiURL, params, &resp); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Query.Search))
	for _, s := range resp.Query.Search {
		candidates = append(candidates, Candidate{Title: s.Title, Snippet: s.Snippet})
	}
	return candidates, nil
}

// fetchExtract loads the intro extract and thumbnail for the winning
// article.
func (f *Fetcher) fetchExtract(ctx context.Context, apiURL, title string) (panelPage, error) {
	size := f.cfg.ThumbnailSize
	if size <= 0 {
		size = defaultThumbnailSize
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts|pageimages"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exsentences": {"3"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {strconv.Itoa(size)},
		"titles":      {title},
		"redirects":   {"1"},
		"origin":      {"*"},
	}

	var resp struct {
		Query struct {
			Pages map[string]struct {
				Title     string `json:"title"`
				Extract   string `json:"extract"`
				Thumbnail *struct {
					Source string `json:"source"`
				} `json:"thumbnail"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := f.getJSON(ctx, apiURL, params, &resp); err != nil {
		return panelPage{}, err
	}

	for _, p := range resp.Query.Pages {
		page := panelPage{Title: p.Title, Extract: p.Extract}
		if p.Thumbnail != nil {
			page.Thumbnail = p.Thumbnail.Source
		}
		return page, nil
	}
	return panelPage{Title: title}, nil
}

func (f *Fetcher) getJSON(ctx context.Context, apiURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("panel API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("panel API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing panel response: %w", err)
	}
	return nil
}

type panelPage struct {
	Title     string
	Extract   string
	Thumbnail string
}

// truncateExtract caps the extract length, cutting at a rune boundary.
func truncateExtract(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		max = defaultExtractLength
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// articleLink builds the article URL with spaces as underscores.
func articleLink(baseURL, title string) string {
	escaped := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return strings.TrimSuffix(baseURL, "/") + "/wiki/" + escaped
}
