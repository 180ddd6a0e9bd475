// Package querycache implements the optional per-query cache (C11): a
// fingerprint-to-result map used only on the single-threaded query
// path. Ported from original_source/src/cache.rs's clear-on-overflow
// policy rather than LRU eviction, per spec.md §4.11's own rationale
// (measured gains are single-thread-only; a shared/evicting cache
// regresses under parallel load, so this type must never be shared
// across goroutines).
package querycache

import "github.com/bastiangx/anahash/pkg/variant"

// Cache maps a query fingerprint to its prior ranked result. Not safe
// for concurrent use - confined to the single-thread batch path by
// convention (see pkg/batch), never exposed to worker goroutines.
type Cache struct {
	entries map[string][]variant.Match
	maxSize int
}

// New creates a cache that clears itself once it holds more than
// maxSize entries. maxSize <= 0 disables the size cap (never clears).
func New(maxSize int) *Cache {
	return &Cache{entries: make(map[string][]variant.Match), maxSize: maxSize}
}

// Get returns the cached result for a fingerprint, if present.
func (c *Cache) Get(fingerprint string) ([]variant.Match, bool) {
	v, ok := c.entries[fingerprint]
	return v, ok
}

// Put stores a result, then checks the size cap.
func (c *Cache) Put(fingerprint string, result []variant.Match) {
	c.entries[fingerprint] = result
	c.check()
}

// Clear empties the cache.
func (c *Cache) Clear() { c.entries = make(map[string][]variant.Match) }

func (c *Cache) check() {
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.Clear()
	}
}

// Len reports the current entry count.
func (c *Cache) Len() int { return len(c.entries) }
