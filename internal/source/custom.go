// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// customAdapter speaks an arbitrary HTTP backend described entirely by the
// descriptor: a URL template with {query}/{lang}/{limit} placeholders,
// optional method/headers/body, and either a dotted results path into the
// response or a transformer strategy.
type customAdapter struct {
	desc        *types.Descriptor
	client      *http.Client
	http        types.HTTPConfig
	transformer Transformer
}

func (a *customAdapter) ID() string                    { return a.desc.ID }
func (a *customAdapter) Name() string                  { return a.desc.Name }
func (a *customAdapter) Descriptor() *types.Descriptor { return a.desc }

func (a *customAdapter) Search(ctx context.Context, query, lang string, opts Options) ([]types.Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = a.desc.ResultsLimit
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	reqURL := a.desc.APIURL
	reqURL = strings.ReplaceAll(reqURL, "{query}", url.QueryEscape(query))
	reqURL = strings.ReplaceAll(reqURL, "{lang}", lang)
	reqURL = strings.ReplaceAll(reqURL, "{limit}", strconv.Itoa(limit))

	sep := "?"
	if strings.Contains(reqURL, "?") {
		sep = "&"
	}
	reqURL += fmt.Sprintf("%suse_hybrid=%t", sep, a.desc.UseHybrid)

	method := a.desc.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if method == http.MethodPost && a.desc.Body != "" {
		b := strings.ReplaceAll(a.desc.Body, "{query}", query)
		b = strings.ReplaceAll(b, "{lang}", lang)
		body = strings.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.http.UserAgent)
	for k, v := range a.desc.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API request: %w", a.desc.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s API returned HTTP %d", a.desc.Name, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", a.desc.Name, err)
	}

	if a.transformer != nil {
		return a.transformer.Transform(raw, a.desc.Name, a.desc.EffectiveWeight())
	}
	return a.decodeItems(raw)
}

// decodeItems extracts the result list at the descriptor's dotted path and
// maps each item through the configured field names.
func (a *customAdapter) decodeItems(raw []byte) ([]types.Result, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", a.desc.Name, err)
	}

	items, ok := digPath(doc, a.desc.ResultsPath).([]any)
	if !ok {
		return nil, nil
	}

	titleField := fieldOr(a.desc.TitleField, "title")
	linkField := fieldOr(a.desc.LinkField, "url")
	snippetField := fieldOr(a.desc.SnippetField, "snippet")

	var results []types.Result
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}

		title := stringAt(item, titleField)
		link := stringAt(item, linkField)
		site := stringAt(item, "site")

		snippet := CleanWikiSnippet(stringAt(item, snippetField), title, site)

		display := site
		if display == "" {
			display = hostOf(link)
		}

		weight := a.desc.EffectiveWeight()
		if s, ok := item["score"].(float64); ok && s > 0 {
			weight = s
		}

		r := types.Result{
			Title:       title,
			Link:        link,
			DisplayLink: display,
			Snippet:     snippet,
			HTMLSnippet: snippet,
			Source:      a.desc.Name,
			Weight:      weight,
		}

		if imgs, ok := item["images"].([]any); ok && len(imgs) > 0 {
			if img, ok := imgs[0].(map[string]any); ok {
				if u := stringAt(img, "url"); u != "" {
					r.Pagemap = &types.Pagemap{
						CSEThumbnail: []types.Thumbnail{{Src: FixHotlinkURL(u)}},
					}
				}
			}
		}

		results = append(results, r)
	}
	return results, nil
}

// SearchImages is not supported by the custom variant; its backends expose
// web results only.
func (a *customAdapter) SearchImages(context.Context, string, string, Options) ([]types.Result, error) {
	return nil, nil
}

// digPath walks a dotted path ("data.results") into decoded JSON. An empty
// path returns the document itself.
func digPath(doc any, path string) any {
	if path == "" {
		return doc
	}
	cur := doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func fieldOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
