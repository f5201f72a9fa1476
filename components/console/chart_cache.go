package console

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated summary loads skip the
// echarts render path.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// The summary page renders a handful of charts, but keys include the dataset
// hash, so churning data would otherwise grow the map without bound.
const chartCacheMaxEntries = 64

// ChartCache is a bounded in-memory TTL cache keyed by chart name plus
// dataset hash. Expired snippets are pruned on write; if the cache is still
// full, the stalest snippet is evicted.
type ChartCache struct {
	ttl time.Duration
	max int

	mu       sync.Mutex
	snippets map[string]chartSnippet
}

type chartSnippet struct {
	html       string
	renderedAt time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:      ttl,
		max:      chartCacheMaxEntries,
		snippets: make(map[string]chartSnippet),
	}
}

// GetOrRender returns the cached snippet while it is fresh, rendering and
// storing a new one otherwise. Render failures are never cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.store(key, html)
	return html, nil
}

func (c *ChartCache) lookup(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	snippet, ok := c.snippets[key]
	if !ok {
		return "", false
	}
	if time.Since(snippet.renderedAt) > c.ttl {
		delete(c.snippets, key)
		return "", false
	}
	return snippet.html, true
}

func (c *ChartCache) store(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()
	c.snippets[key] = chartSnippet{html: html, renderedAt: time.Now()}
}

// prune drops expired snippets, then evicts the stalest survivors while the
// cache remains at capacity. Caller holds the lock.
func (c *ChartCache) prune() {
	now := time.Now()
	for key, snippet := range c.snippets {
		if now.Sub(snippet.renderedAt) > c.ttl {
			delete(c.snippets, key)
		}
	}
	for c.max > 0 && len(c.snippets) >= c.max {
		var (
			stalest string
			oldest  time.Time
		)
		for key, snippet := range c.snippets {
			if stalest == "" || snippet.renderedAt.Before(oldest) {
				stalest = key
				oldest = snippet.renderedAt
			}
		}
		delete(c.snippets, stalest)
	}
}

// datasetHash returns a deterministic cache key component for a chart dataset.
func datasetHash(dataset any) string {
	b, err := json.Marshal(dataset)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
