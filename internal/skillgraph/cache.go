package skillgraph

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// expansionCache is an insertion-ordered LRU with TTL-based lazy
// invalidation. Eviction removes the oldest-inserted entry on overflow;
// reads do not refresh an entry's position. Safe for concurrent use: the
// graph is read-mostly but many requests expand skills simultaneously.
type expansionCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = oldest inserted

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key      string
	result   ExpansionResult
	storedAt time.Time
}

func newExpansionCache(capacity int, ttl time.Duration) *expansionCache {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &expansionCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func cacheKey(skill string, depth int) string {
	return fmt.Sprintf("%s|%d", normalizeName(skill), depth)
}

// get returns a fresh cached result. Expired entries are removed on read
// and reported as misses: a recompute is always preferred over returning
// stale data.
func (c *expansionCache) get(key string) (ExpansionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return ExpansionResult{}, false
	}
	entry := elem.Value.(*cacheEntry)
	if time.Since(entry.storedAt) > c.ttl {
		c.order.Remove(elem)
		delete(c.entries, key)
		c.misses++
		return ExpansionResult{}, false
	}
	c.hits++
	return entry.result, true
}

func (c *expansionCache) put(key string, result ExpansionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.result = result
		entry.storedAt = time.Now()
		return
	}

	for len(c.entries) >= c.capacity {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	elem := c.order.PushBack(&cacheEntry{key: key, result: result, storedAt: time.Now()})
	c.entries[key] = elem
}

func (c *expansionCache) stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
