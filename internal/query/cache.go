package query

import (
	"sync"
	"time"

	"github.com/jonathan/talent-search/internal/types"
)

// parseCache memoizes extraction+expansion results per normalized query
// text with a TTL. Routing is never cached: it is cheap and its confidence
// feeds the response. Bounded by evicting the oldest entry on overflow.
type parseCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*parseCacheEntry
}

type parseCacheEntry struct {
	entities types.QueryEntities
	storedAt time.Time
}

func newParseCache(capacity int, ttl time.Duration) *parseCache {
	if capacity <= 0 {
		capacity = 512
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &parseCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*parseCacheEntry, capacity),
	}
}

func (c *parseCache) get(key string) (types.QueryEntities, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return types.QueryEntities{}, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return types.QueryEntities{}, false
	}
	return entry.entities, true
}

func (c *parseCache) put(key string, entities types.QueryEntities) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = &parseCacheEntry{entities: entities, storedAt: time.Now()}
}
