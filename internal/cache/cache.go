// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the bounded, time-expiring result caches and the
// advisory API quota tracker. Both are process-wide singletons constructed
// at startup and passed explicitly to the components that read or write
// them.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// DefaultTTL is the entry lifetime for both caches.
const DefaultTTL = 7 * 24 * time.Hour

const (
	defaultWebMax   = 200
	defaultImageMax = 100
)

type entry struct {
	data     *types.SearchData
	inserted time.Time
}

// Cache maps (query, page, sort, configuration signature) to a merged
// result page. Capacity eviction removes the oldest-inserted entry;
// expiry is checked lazily on reads. The web and image instances never
// collide because every key carries a mode prefix.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string
	maxSize  int
	ttl      time.Duration
	prefix   string
	withSort bool
	disabled bool

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// NewWeb returns the web-mode cache.
func NewWeb(maxSize int, ttl time.Duration) *Cache {
	return newCache("web", maxSize, defaultWebMax, ttl, true)
}

// NewImage returns the image-mode cache. Image keys carry no sort segment,
// and the instance can be disabled entirely with Disable.
func NewImage(maxSize int, ttl time.Duration) *Cache {
	return newCache("images", maxSize, defaultImageMax, ttl, false)
}

func newCache(prefix string, maxSize, defaultMax int, ttl time.Duration, withSort bool) *Cache {
	if maxSize <= 0 {
		maxSize = defaultMax
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  make(map[string]entry),
		maxSize:  maxSize,
		ttl:      ttl,
		prefix:   prefix,
		withSort: withSort,
		now:      time.Now,
	}
}

// Key builds the composite cache key. Identical (query, page, sort,
// signature) tuples map to the same key regardless of query case or
// surrounding whitespace.
func (c *Cache) Key(query string, page int, sort, signature string) string {
	q := strings.TrimSpace(strings.ToLower(query))
	if c.withSort {
		return fmt.Sprintf("%s:%s:%d:%s:%s", c.prefix, q, page, sort, signature)
	}
	return fmt.Sprintf("%s:%s:%d:%s", c.prefix, q, page, signature)
}

// Get returns the cached page, or nil on miss. Reads first sweep out all
// expired entries, and an individually expired hit is a miss.
func (c *Cache) Get(query string, page int, sort, signature string) *types.SearchData {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return nil
	}

	c.sweepLocked()

	e, ok := c.entries[c.Key(query, page, sort, signature)]
	if !ok || c.now().Sub(e.inserted) > c.ttl {
		return nil
	}
	return e.data
}

// Set stores a merged page. At capacity the oldest-inserted entry is
// evicted first, so the size never exceeds the maximum.
func (c *Cache) Set(query string, page int, data *types.SearchData, sort, signature string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	key := c.Key(query, page, sort, signature)
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{data: data, inserted: c.now()}
}

// sweepLocked removes every expired entry.
func (c *Cache) sweepLocked() {
	now := c.now()
	kept := c.order[:0]
	for _, key := range c.order {
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		if now.Sub(e.inserted) > c.ttl {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

func (c *Cache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	delete(c.entries, c.order[0])
	c.order = c.order[1:]
}

// Stats reports cache occupancy for the developer display.
type Stats struct {
	Size    int  `json:"size"`
	MaxSize int  `json:"maxSize"`
	Enabled bool `json:"enabled"`
}

// Stats returns current occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	size := len(c.entries)
	if c.disabled {
		size = 0
	}
	return Stats{Size: size, MaxSize: c.maxSize, Enabled: !c.disabled}
}

// Disable turns the cache into a no-op and drops its contents.
func (c *Cache) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = true
	c.entries = make(map[string]entry)
	c.order = nil
}
