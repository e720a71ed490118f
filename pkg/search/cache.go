package search

import (
	"container/list"
	"sync"
)

type cacheKey struct {
	pool string
	n    int
}

type cacheEntry struct {
	key   cacheKey
	words []scored
}

// candidateCache remembers the candidate list of a (pool, length) pair.
// The same remainder is reached through many branches, e.g. "do" after both
// "coat" and "taco". Pools are keyed verbatim since the letter order of a pool
// decides the discovery order of its candidates.
//
// Cached slices are shared between goroutines and must not be modified.
type candidateCache struct {
	mu      sync.Mutex
	max     int
	entries map[cacheKey]*list.Element
	lru     *list.List
	hits    int64
	misses  int64
}

func newCandidateCache(size int) *candidateCache {
	if size <= 0 {
		return nil
	}
	return &candidateCache{
		max:     size,
		entries: make(map[cacheKey]*list.Element, size),
		lru:     list.New(),
	}
}

func (c *candidateCache) get(pool string, n int) ([]scored, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[cacheKey{pool, n}]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.lru.MoveToFront(el)
	return el.Value.(*cacheEntry).words, true
}

func (c *candidateCache) put(pool string, n int, words []scored) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{pool, n}
	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		return
	}
	if c.lru.Len() >= c.max {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, words: words})
}

// CacheStats reports candidate cache usage.
type CacheStats struct {
	Entries int
	Max     int
	Hits    int64
	Misses  int64
}

func (c *candidateCache) stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: c.lru.Len(), Max: c.max, Hits: c.hits, Misses: c.misses}
}
