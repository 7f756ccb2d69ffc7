// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/laurentftech/kidsearch/pkg/types"
)

const (
	defaultCropLength       = 30
	defaultMatchingStrategy = "last"
	defaultSemanticRatio    = 0.75

	highlightPreTag  = `<span class="searchmatch">`
	highlightPostTag = `</span>`
)

// meiliSearchAdapter queries a hosted MeiliSearch index with a single POST
// carrying query, crop, and highlight parameters, plus an optional hybrid
// semantic ratio.
type meiliSearchAdapter struct {
	desc   *types.Descriptor
	client *http.Client
	http   types.HTTPConfig
}

func (a *meiliSearchAdapter) ID() string                    { return a.desc.ID }
func (a *meiliSearchAdapter) Name() string                  { return a.desc.Name }
func (a *meiliSearchAdapter) Descriptor() *types.Descriptor { return a.desc }

// meiliPayload is the search request body.
type meiliPayload struct {
	Q                     string       `json:"q"`
	Limit                 int          `json:"limit"`
	AttributesToRetrieve  []string     `json:"attributesToRetrieve,omitempty"`
	AttributesToHighlight []string     `json:"attributesToHighlight,omitempty"`
	AttributesToCrop      []string     `json:"attributesToCrop,omitempty"`
	CropLength            int          `json:"cropLength,omitempty"`
	CropMarker            string       `json:"cropMarker,omitempty"`
	HighlightPreTag       string       `json:"highlightPreTag,omitempty"`
	HighlightPostTag      string       `json:"highlightPostTag,omitempty"`
	MatchingStrategy      string       `json:"matchingStrategy,omitempty"`
	Filter                string       `json:"filter,omitempty"`
	Hybrid                *meiliHybrid `json:"hybrid,omitempty"`
}

type meiliHybrid struct {
	SemanticRatio float64 `json:"semanticRatio"`
	Embedder      string  `json:"embedder"`
}

func (a *meiliSearchAdapter) Search(ctx context.Context, query, lang string, opts Options) ([]types.Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = a.desc.ResultsLimit
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	payload := meiliPayload{
		Q:                     query,
		Limit:                 limit,
		AttributesToRetrieve:  orDefault(a.desc.AttributesToRetrieve, []string{"*", "_formatted"}),
		AttributesToHighlight: orDefault(a.desc.AttributesToHighlight, []string{"title", "content"}),
		AttributesToCrop:      orDefault(a.desc.AttributesToCrop, []string{"content"}),
		CropLength:            a.desc.CropLength,
		CropMarker:            "...",
		HighlightPreTag:       highlightPreTag,
		HighlightPostTag:      highlightPostTag,
		MatchingStrategy:      a.desc.MatchingStrategy,
	}
	if payload.CropLength <= 0 {
		payload.CropLength = defaultCropLength
	}
	if payload.MatchingStrategy == "" {
		payload.MatchingStrategy = defaultMatchingStrategy
	}
	if a.desc.Filter != "" {
		payload.Filter = expandLang(a.desc.Filter, lang)
	}
	if ss := a.desc.SemanticSearch; ss != nil && ss.Enabled {
		ratio := ss.SemanticRatio
		if ratio <= 0 {
			ratio = defaultSemanticRatio
		}
		payload.Hybrid = &meiliHybrid{SemanticRatio: ratio, Embedder: "default"}
	}

	var mr meiliResponse
	if err := a.postJSON(ctx, payload, &mr); err != nil {
		return nil, err
	}

	results := make([]types.Result, 0, len(mr.Hits))
	for _, hit := range mr.Hits {
		title := hit.Title
		content := hit.Content
		if hit.Formatted != nil {
			if hit.Formatted.Title != "" {
				title = hit.Formatted.Title
			}
			switch {
			case hit.Formatted.Content != "":
				content = hit.Formatted.Content
			case hit.Formatted.Excerpt != "":
				content = hit.Formatted.Excerpt
			}
		}

		r := types.Result{
			Title:       title,
			Link:        hit.URL,
			DisplayLink: hostOf(hit.URL),
			Snippet:     StripHighlightTags(content),
			HTMLSnippet: content,
			Source:      a.desc.Name,
			Weight:      a.desc.EffectiveWeight(),
		}
		if len(hit.Images) > 0 && hit.Images[0].URL != "" {
			r.Pagemap = &types.Pagemap{
				CSEThumbnail: []types.Thumbnail{{Src: FixHotlinkURL(hit.Images[0].URL)}},
			}
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *meiliSearchAdapter) SearchImages(ctx context.Context, query, lang string, opts Options) ([]types.Result, error) {
	if a.desc.ImageSearch == nil {
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultImageLimit
	}

	var mr meiliResponse
	if err := a.postJSON(ctx, meiliPayload{Q: query, Limit: limit}, &mr); err != nil {
		return nil, err
	}

	var results []types.Result
	for _, hit := range mr.Hits {
		if len(hit.Images) == 0 || hit.Images[0].URL == "" {
			continue
		}
		img := hit.Images[0]
		width, height := img.Width, img.Height
		if width == 0 {
			width = 400
		}
		if height == 0 {
			height = 300
		}
		results = append(results, types.Result{
			Title:       hit.Title,
			Link:        FixHotlinkURL(img.URL),
			DisplayLink: hostOf(hit.URL),
			Source:      a.desc.Name,
			Weight:      a.desc.EffectiveWeight(),
			Image: &types.Image{
				ContextLink:   hit.URL,
				ThumbnailLink: FixHotlinkURL(img.URL),
				Width:         width,
				Height:        height,
			},
		})
	}
	return results, nil
}

func (a *meiliSearchAdapter) postJSON(ctx context.Context, payload meiliPayload, out *meiliResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", a.desc.Name, err)
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/search", a.desc.APIURL, a.desc.IndexName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if a.desc.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.desc.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")
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

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// MeiliSearch JSON structures.
type meiliResponse struct {
	Hits []meiliHit `json:"hits"`
}

type meiliHit struct {
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Content   string          `json:"content"`
	Images    []meiliImage    `json:"images"`
	Formatted *meiliFormatted `json:"_formatted"`
}

type meiliFormatted struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

type meiliImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
