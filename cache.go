package examplegen

import "sync"

type cacheKey struct {
	path   string
	value  string
	target RenderTarget
}

type cacheEntry struct {
	markup string
	found  bool
}

// ExampleCache memoizes rendered markup per (path, value, target). Absent
// results are cached as well. There is no eviction; a disabled cache
// neither reads nor stores.
type ExampleCache struct {
	mu       sync.Mutex
	entries  map[cacheKey]cacheEntry
	disabled bool
}

// NewExampleCache returns an enabled, empty cache.
func NewExampleCache() *ExampleCache {
	return &ExampleCache{entries: make(map[cacheKey]cacheEntry)}
}

// Get computes the entry for key through compute unless it is cached. The
// bool result reports a cache hit. compute runs under the cache lock and
// must not call back into the cache.
func (c *ExampleCache) Get(path, value string, target RenderTarget, compute func() (string, bool)) (string, bool, bool) {
	key := cacheKey{path: path, value: value, target: target}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		markup, found := compute()
		return markup, found, false
	}
	if entry, ok := c.entries[key]; ok {
		return entry.markup, entry.found, true
	}
	markup, found := compute()
	c.entries[key] = cacheEntry{markup: markup, found: found}
	return markup, found, false
}

// Disable drops every entry and bypasses the cache from now on.
func (c *ExampleCache) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = true
	c.entries = make(map[cacheKey]cacheEntry)
}

// Disabled reports whether the cache is bypassed.
func (c *ExampleCache) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// Clear drops every entry.
func (c *ExampleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached entries.
func (c *ExampleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
