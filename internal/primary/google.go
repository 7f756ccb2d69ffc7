// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package primary implements the Google Custom Search client, the broad
// web backend layered under the curated encyclopedia sources.
package primary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/laurentftech/kidsearch/internal/httputil"
	"github.com/laurentftech/kidsearch/pkg/types"
)

// googleAPIBase is the Custom Search endpoint. Tests point it at a local
// server.
var googleAPIBase = "https://www.googleapis.com/customsearch/v1"

// pageSize is the fixed result count per primary query, also the stride
// of the start parameter.
const pageSize = 10

// Placeholder credentials shipped in the sample configuration. They count
// as absent so a copied sample config degrades to sources-only search
// instead of failing every query.
const (
	placeholderAPIKey = "VOTRE_API_KEY_ICI"
	placeholderCSEID  = "VOTRE_ID_CSE_ICI"
)

// Client queries the primary web search API.
type Client struct {
	cfg    types.PrimaryConfig
	client *http.Client
}

// NewClient returns a primary search client. A nil http.Client gets a
// default one with the configured timeout.
func NewClient(cfg types.PrimaryConfig, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: client}
}

// Enabled reports whether the client has usable credentials. Placeholder
// values from the sample configuration count as missing.
func (c *Client) Enabled() bool {
	if !c.cfg.Enabled {
		return false
	}
	if c.cfg.APIKey == "" || c.cfg.APIKey == placeholderAPIKey {
		return false
	}
	if c.cfg.CSEID == "" || c.cfg.CSEID == placeholderCSEID {
		return false
	}
	return true
}

// Query is one primary search request.
type Query struct {
	Text string
	Lang string

	// Page is 1-based; each page holds ten results.
	Page int

	// Sort is passed through to the API (e.g. "date") when set.
	Sort string

	Mode types.Mode

	// ExcludeDomains are appended as negative site filters so domains
	// already covered by a curated source are not duplicated.
	ExcludeDomains []string
}

// Response is the parsed primary result page.
type Response struct {
	Items        []types.Result
	TotalResults string
}

// Search runs one primary query. Rate-limit responses are retried with
// backoff; other non-200 statuses are returned as errors.
func (c *Client) Search(ctx context.Context, q Query) (*Response, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("primary search is not configured")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	text := q.Text
	for _, d := range q.ExcludeDomains {
		text += " -site:" + d
	}

	params := url.Values{
		"q":      {text},
		"key":    {c.cfg.APIKey},
		"cx":     {c.cfg.CSEID},
		"start":  {strconv.Itoa((page-1)*pageSize + 1)},
		"num":    {strconv.Itoa(pageSize)},
		"safe":   {"active"},
		"filter": {"1"},
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Mode == types.ModeImages {
		params.Set("searchType", "image")
	} else if q.Lang != "" {
		params.Set("lr", "lang_"+q.Lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("primary API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("primary API returned HTTP %d", resp.StatusCode)
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing primary response: %w", err)
	}

	items := make([]types.Result, 0, len(gr.Items))
	for _, it := range gr.Items {
		r := types.Result{
			Title:       it.Title,
			Link:        it.Link,
			DisplayLink: it.DisplayLink,
			Snippet:     it.Snippet,
			HTMLSnippet: it.HTMLSnippet,
		}
		if it.Image != nil {
			r.Image = &types.Image{
				ContextLink:   it.Image.ContextLink,
				ThumbnailLink: it.Image.ThumbnailLink,
				Width:         it.Image.Width,
				Height:        it.Image.Height,
			}
			// Image results label the page host, not the CDN host.
			if r.DisplayLink == "" {
				r.DisplayLink = hostOf(it.Image.ContextLink)
			}
		}
		if len(it.Pagemap.CSEThumbnail) > 0 {
			r.Pagemap = &types.Pagemap{CSEThumbnail: []types.Thumbnail{{Src: it.Pagemap.CSEThumbnail[0].Src}}}
		}
		items = append(items, r)
	}

	return &Response{Items: items, TotalResults: gr.SearchInformation.TotalResults}, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(raw, "www.")
	}
	return u.Hostname()
}

// Custom Search API JSON structures.
type googleResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
		Snippet     string `json:"snippet"`
		HTMLSnippet string `json:"htmlSnippet"`
		Image       *struct {
			ContextLink   string `json:"contextLink"`
			ThumbnailLink string `json:"thumbnailLink"`
			Width         int    `json:"width"`
			Height        int    `json:"height"`
		} `json:"image"`
		Pagemap struct {
			CSEThumbnail []struct {
				Src string `json:"src"`
			} `json:"cse_thumbnail"`
		} `json:"pagemap"`
	} `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}
