// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// Registry holds the active set of adapters in descriptor insertion order
// and fans queries out to all of them concurrently. A single adapter's
// failure never blocks or fails the others; it degrades to an empty list
// with a warning on the log writer.
type Registry struct {
	adapters []Adapter
	byID     map[string]Adapter

	// log receives per-adapter failure warnings.
	log io.Writer
}

// NewRegistry builds one adapter per descriptor. Disabled descriptors are
// skipped; transformers apply to the custom descriptor with the matching
// id and may be nil.
func NewRegistry(descs []types.Descriptor, client *http.Client, httpCfg types.HTTPConfig, transformers map[string]Transformer, log io.Writer) (*Registry, error) {
	if log == nil {
		log = io.Discard
	}
	r := &Registry{byID: make(map[string]Adapter), log: log}

	for i := range descs {
		desc := &descs[i]
		if !desc.IsEnabled() {
			continue
		}
		if _, dup := r.byID[desc.ID]; dup {
			return nil, fmt.Errorf("duplicate source id %q", desc.ID)
		}
		a, err := New(desc, client, httpCfg, transformers[desc.ID])
		if err != nil {
			return nil, err
		}
		r.adapters = append(r.adapters, a)
		r.byID[desc.ID] = a
	}
	return r, nil
}

// Active returns the web-capable adapters in registry order.
func (r *Registry) Active() []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if a.Descriptor().WebCapable() {
			out = append(out, a)
		}
	}
	return out
}

// ActiveImages returns the image-capable adapters in registry order.
func (r *Registry) ActiveImages() []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if a.Descriptor().SupportsImages {
			out = append(out, a)
		}
	}
	return out
}

// SearchAll queries every web-capable adapter concurrently and returns the
// per-adapter result lists in registry order. Failed adapters contribute
// an empty list.
func (r *Registry) SearchAll(ctx context.Context, query, lang string, opts Options) [][]types.Result {
	return r.fanOut(ctx, r.Active(), func(a Adapter) ([]types.Result, error) {
		return a.Search(ctx, query, lang, opts)
	})
}

// SearchAllImages is the image-mode analogue of SearchAll.
func (r *Registry) SearchAllImages(ctx context.Context, query, lang string, opts Options) [][]types.Result {
	return r.fanOut(ctx, r.ActiveImages(), func(a Adapter) ([]types.Result, error) {
		return a.SearchImages(ctx, query, lang, opts)
	})
}

// fanOut issues all adapter calls without waiting on one another and joins
// them, so latency is bounded by the slowest source rather than the sum.
func (r *Registry) fanOut(ctx context.Context, adapters []Adapter, call func(Adapter) ([]types.Result, error)) [][]types.Result {
	lists := make([][]types.Result, len(adapters))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a Adapter) {
			defer wg.Done()
			results, err := call(a)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(r.log, "warning: source %s failed: %v\n", a.ID(), err)
				mu.Unlock()
				return
			}
			lists[i] = results
		}(i, a)
	}
	wg.Wait()
	return lists
}

// ConfigSignature identifies the enabled source set and weighting. It
// partitions the cache: changing the enabled sources or their weights
// invalidates prior entries without any explicit flush.
func (r *Registry) ConfigSignature() string {
	return signature(r.adapters)
}

// ImageConfigSignature covers the image-capable subset only.
func (r *Registry) ImageConfigSignature() string {
	return signature(r.ActiveImages())
}

func signature(adapters []Adapter) string {
	parts := make([]string, len(adapters))
	for i, a := range adapters {
		weight := a.Descriptor().Weight
		if weight == 0 {
			weight = 1
		}
		parts[i] = fmt.Sprintf("%s:%g", a.ID(), weight)
	}
	return strings.Join(parts, "|")
}

// ExcludedDomains lists the domains of sources that opt out of primary
// coverage, used to build negative site filters for the primary query.
func (r *Registry) ExcludedDomains(mode types.Mode, lang string) []string {
	adapters := r.Active()
	if mode == types.ModeImages {
		adapters = r.ActiveImages()
	}

	var domains []string
	for _, a := range adapters {
		desc := a.Descriptor()
		if !desc.ExcludedFromPrimary() {
			continue
		}
		if len(desc.ExcludeDomains) > 0 {
			domains = append(domains, desc.ExcludeDomains...)
			continue
		}
		if host := hostOf(expandLang(desc.BaseURL, lang)); host != "" && host != desc.BaseURL {
			domains = append(domains, host)
		}
	}
	return domains
}
