// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge interleaves heterogeneous result lists into a single
// ranked, deduplicated sequence.
package merge

import (
	"sort"
	"strings"

	"github.com/laurentftech/kidsearch/internal/score"
	"github.com/laurentftech/kidsearch/pkg/types"
)

// primaryLabel is attached to primary-API results that carry no source label.
const primaryLabel = "Google"

// Merge combines the primary result list with the flattened secondary
// lists into one sequence ordered by calculated weight.
//
// Each result's weight is its source prior decayed by rank within its own
// origin list — base × (1 − index/count/2), never below half the base —
// plus the lexical bonus, so a highly relevant secondary result can
// outrank a weakly relevant primary one. The primary list uses a base
// weight of 1.0. The decay formula is behavior the rest of the system is
// tuned against; with a single result there is no decay, and for large
// lists the decay approaches but never reaches half.
//
// The sort is stable with ties broken by ascending original index, then
// duplicates are removed by normalized URL, keeping the highest-ranked
// occurrence. Results with no resolvable URL are dropped.
func Merge(primary []types.Result, secondary [][]types.Result, query string, mode types.Mode) []types.Result {
	all := make([]types.Result, 0, len(primary))

	for i, item := range primary {
		if item.Source == "" {
			item.Source = primaryLabel
		}
		item.OriginalIndex = i
		item.CalculatedWeight = 1.0*(1.0-float64(i)/float64(len(primary))/2.0) +
			score.Lexical(item.Title, item.Snippet, query)
		all = append(all, item)
	}

	for _, list := range secondary {
		for i, item := range list {
			item.OriginalIndex = i
			item.CalculatedWeight = item.Weight*(1.0-float64(i)/float64(len(list))/2.0) +
				score.Lexical(item.Title, item.Snippet, query)
			all = append(all, item)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CalculatedWeight != all[j].CalculatedWeight {
			return all[i].CalculatedWeight > all[j].CalculatedWeight
		}
		return all[i].OriginalIndex < all[j].OriginalIndex
	})

	seen := make(map[string]struct{}, len(all))
	deduped := all[:0:0]
	for _, r := range all {
		key := NormalizeURL(identityURL(r, mode))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}

// identityURL picks the URL that identifies a result for dedup. In image
// mode the context link is preferred over the direct link, because CDN
// links for the same source article vary.
func identityURL(r types.Result, mode types.Mode) string {
	if mode == types.ModeImages && r.Image != nil && r.Image.ContextLink != "" {
		return r.Image.ContextLink
	}
	return r.Link
}

// NormalizeURL strips scheme, leading "www.", query string, fragment, and
// trailing slash, and lowercases the host, so protocol and host-prefix
// variants of the same page collapse to one dedup key.
func NormalizeURL(u string) string {
	if u == "" {
		return ""
	}
	if i := strings.Index(u, "://"); i >= 0 {
		scheme := strings.ToLower(u[:i])
		if scheme == "http" || scheme == "https" {
			u = u[i+3:]
		}
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimSuffix(u, "/")

	host, path := u, ""
	if i := strings.IndexByte(u, '/'); i >= 0 {
		host, path = u[:i], u[i:]
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	return host + path
}
