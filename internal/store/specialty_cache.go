package store

import (
	"context"
	"sync"
	"time"
)

// DefaultSpecialtyCacheTTL keeps specialty rows for minutes, not hours:
// staleness is an accepted tradeoff for read volume reduction.
const DefaultSpecialtyCacheTTL = 5 * time.Minute

// CachedSpecialtyStore wraps a SpecialtyStore with a short-TTL in-memory
// cache keyed by profile slug. Negative results (no row) are cached too,
// so absent candidates don't re-query every request.
type CachedSpecialtyStore struct {
	inner SpecialtyStore
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]specialtyCacheEntry
}

type specialtyCacheEntry struct {
	specialties []string
	hasRow      bool
	storedAt    time.Time
}

// NewCachedSpecialtyStore wraps inner with a TTL cache.
func NewCachedSpecialtyStore(inner SpecialtyStore, ttl time.Duration) *CachedSpecialtyStore {
	if ttl <= 0 {
		ttl = DefaultSpecialtyCacheTTL
	}
	return &CachedSpecialtyStore{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]specialtyCacheEntry),
	}
}

// SpecialtiesFor serves fresh cached slugs and batch-fetches the rest.
func (c *CachedSpecialtyStore) SpecialtiesFor(ctx context.Context, slugs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(slugs))
	var missing []string

	c.mu.Lock()
	now := time.Now()
	for _, slug := range slugs {
		entry, ok := c.entries[slug]
		if !ok || now.Sub(entry.storedAt) > c.ttl {
			missing = append(missing, slug)
			continue
		}
		if entry.hasRow {
			result[slug] = entry.specialties
		}
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := c.inner.SpecialtiesFor(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, slug := range missing {
		specialties, hasRow := fetched[slug]
		c.entries[slug] = specialtyCacheEntry{
			specialties: specialties,
			hasRow:      hasRow,
			storedAt:    now,
		}
		if hasRow {
			result[slug] = specialties
		}
	}
	c.mu.Unlock()

	return result, nil
}
