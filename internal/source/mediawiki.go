// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/laurentftech/kidsearch/pkg/types"
)

const (
	defaultResultsLimit  = 5
	defaultImageLimit    = 10
	defaultThumbnailSize = 200

	// fileNamespace restricts image search to File: pages.
	fileNamespace = "6"
)

// mediaWikiAdapter speaks the MediaWiki action API: a search call for
// candidate titles, then an optional batched lookup by pipe-joined titles
// for thumbnails or image metadata.
type mediaWikiAdapter struct {
	desc   *types.Descriptor
	client *http.Client
	http   types.HTTPConfig
}

func (a *mediaWikiAdapter) ID() string                    { return a.desc.ID }
func (a *mediaWikiAdapter) Name() string                  { return a.desc.Name }
func (a *mediaWikiAdapter) Descriptor() *types.Descriptor { return a.desc }

func (a *mediaWikiAdapter) Search(ctx context.Context, query, lang string, opts Options) ([]types.Result, error) {
	apiURL := expandLang(a.desc.APIURL, lang)
	baseURL := expandLang(a.desc.BaseURL, lang)

	limit := opts.Limit
	if limit <= 0 {
		limit = a.desc.ResultsLimit
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srprop":   {"snippet|titlesnippet"},
		"srlimit":  {strconv.Itoa(limit)},
		"origin":   {"*"},
	}
	for k, v := range a.desc.SearchParams {
		params.Set(k, v)
	}

	var sr mwSearchResponse
	if err := a.getJSON(ctx, apiURL, params, &sr); err != nil {
		return nil, err
	}
	if len(sr.Query.Search) == 0 {
		return nil, nil
	}

	thumbs := map[string]string{}
	if a.desc.FetchThumbnails {
		// Thumbnail failures degrade to text-only results.
		thumbs, _ = a.fetchThumbnails(ctx, apiURL, sr.Query.Search)
	}

	host := hostOf(baseURL)
	articlePath := a.desc.ArticlePath
	if articlePath == "" {
		articlePath = "/wiki/"
	}

	results := make([]types.Result, 0, len(sr.Query.Search))
	for _, item := range sr.Query.Search {
		r := types.Result{
			Title:       item.Title,
			Link:        articleURL(baseURL, articlePath, item.Title),
			DisplayLink: host,
			Snippet:     StripHighlightTags(item.Snippet),
			HTMLSnippet: item.Snippet,
			Source:      a.desc.Name,
			Weight:      a.desc.EffectiveWeight(),
		}
		if src := thumbs[item.Title]; src != "" {
			r.Pagemap = &types.Pagemap{CSEThumbnail: []types.Thumbnail{{Src: src}}}
		}
		results = append(results, r)
	}
	return results, nil
}

// fetchThumbnails batches a pageimages lookup for all candidate titles.
func (a *mediaWikiAdapter) fetchThumbnails(ctx context.Context, apiURL string, items []mwSearchItem) (map[string]string, error) {
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	size := a.desc.ThumbnailSize
	if size <= 0 {
		size = defaultThumbnailSize
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {strconv.Itoa(size)},
		"titles":      {strings.Join(titles, "|")},
		"origin":      {"*"},
	}

	var tr mwPagesResponse
	if err := a.getJSON(ctx, apiURL, params, &tr); err != nil {
		return nil, err
	}

	thumbs := make(map[string]string)
	for _, p := range tr.Query.Pages {
		if p.Thumbnail != nil && p.Thumbnail.Source != "" {
			thumbs[p.Title] = FixHotlinkURL(p.Thumbnail.Source)
		}
	}
	return thumbs, nil
}

func (a *mediaWikiAdapter) SearchImages(ctx context.Context, query, lang string, opts Options) ([]types.Result, error) {
	if a.desc.ImageSearch == nil {
		return nil, nil
	}

	apiURL := expandLang(a.desc.APIURL, lang)
	baseURL := expandLang(a.desc.BaseURL, lang)

	// Negative category clauses keep configured categories out of the
	// file-namespace search.
	finalQuery := query
	for _, c := range a.desc.ImageSearch.ExcludeCategories {
		finalQuery += fmt.Sprintf(" -incategory:%q", c)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultImageLimit
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"list":        {"search"},
		"srsearch":    {finalQuery},
		"srnamespace": {fileNamespace},
		"srlimit":     {strconv.Itoa(limit)},
		"srwhat":      {"text"},
		"origin":      {"*"},
	}

	var sr mwSearchResponse
	if err := a.getJSON(ctx, apiURL, params, &sr); err != nil {
		return nil, err
	}
	if len(sr.Query.Search) == 0 {
		return nil, nil
	}

	titles := make([]string, len(sr.Query.Search))
	for i, it := range sr.Query.Search {
		titles[i] = it.Title
	}

	size := a.desc.ThumbnailSize
	if size <= 0 {
		size = defaultThumbnailSize
	}

	infoParams := url.Values{
		"action":     {"query"},
		"format":     {"json"},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|size|extmetadata"},
		"iiurlwidth": {strconv.Itoa(size)},
		"titles":     {strings.Join(titles, "|")},
		"origin":     {"*"},
	}

	var ir mwPagesResponse
	if err := a.getJSON(ctx, apiURL, infoParams, &ir); err != nil {
		return nil, err
	}

	host := hostOf(baseURL)
	var results []types.Result
	for _, p := range ir.Query.Pages {
		if len(p.ImageInfo) == 0 {
			continue
		}
		info := p.ImageInfo[0]
		results = append(results, types.Result{
			Title:       stripFileTitle(p.Title),
			Link:        FixHotlinkURL(info.URL),
			DisplayLink: host,
			Source:      a.desc.Name,
			Weight:      a.desc.EffectiveWeight(),
			Image: &types.Image{
				ContextLink:   info.DescriptionURL,
				ThumbnailLink: FixHotlinkURL(info.ThumbURL),
				Width:         info.ThumbWidth,
				Height:        info.ThumbHeight,
			},
		})
	}
	return results, nil
}

func (a *mediaWikiAdapter) getJSON(ctx context.Context, apiURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.http.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s API request: %w", a.desc.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API returned HTTP %d", a.desc.Name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", a.desc.Name, err)
	}
	return nil
}

// expandLang substitutes the {lang} placeholder in a URL template.
func expandLang(template, lang string) string {
	return strings.ReplaceAll(template, "{lang}", lang)
}

// hostOf returns the hostname of a URL, or the input when unparsable.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}

// articleURL builds the article link: underscores for spaces, then
// path-escaped.
func articleURL(baseURL, articlePath, title string) string {
	escaped := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return strings.TrimSuffix(baseURL, "/") + path.Join("/", articlePath) + "/" + escaped
}

// stripFileTitle drops the File: prefix and the extension from an image
// page title.
func stripFileTitle(title string) string {
	if _, rest, ok := strings.Cut(title, ":"); ok {
		title = rest
	}
	if i := strings.LastIndexByte(title, '.'); i > 0 {
		title = title[:i]
	}
	return title
}

// MediaWiki action API JSON structures.
type mwSearchResponse struct {
	Query struct {
		Search []mwSearchItem `json:"search"`
	} `json:"query"`
}

type mwSearchItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type mwPagesResponse struct {
	Query struct {
		Pages map[string]mwPage `json:"pages"`
	} `json:"query"`
}

type mwPage struct {
	Title     string        `json:"title"`
	Thumbnail *mwThumbnail  `json:"thumbnail"`
	ImageInfo []mwImageInfo `json:"imageinfo"`
}

type mwThumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type mwImageInfo struct {
	URL            string `json:"url"`
	DescriptionURL string `json:"descriptionurl"`
	ThumbURL       string `json:"thumburl"`
	ThumbWidth     int    `json:"thumbwidth"`
	ThumbHeight    int    `json:"thumbheight"`
}
