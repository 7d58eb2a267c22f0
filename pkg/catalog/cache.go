package catalog

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	data    []byte
	fetched time.Time
}

// CachedSource memoizes another Source for a fixed TTL.
// Failed fetches are not cached.
type CachedSource struct {
	next  Source
	ttl   time.Duration
	now   func() time.Time
	cache *lru.Cache[string, cacheEntry]
}

// NewCachedSource wraps next with an LRU holding up to size files.
// A ttl of zero caches until eviction.
func NewCachedSource(next Source, size int, ttl time.Duration) (*CachedSource, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CachedSource{next: next, ttl: ttl, now: time.Now, cache: cache}, nil
}

// Fetch returns the cached bytes of name, fetching on miss or expiry.
func (c *CachedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if e, ok := c.cache.Get(name); ok {
		if c.ttl == 0 || c.now().Sub(e.fetched) < c.ttl {
			return e.data, nil
		}
		c.cache.Remove(name)
	}
	data, err := c.next.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, cacheEntry{data: data, fetched: c.now()})
	return data, nil
}

// Purge drops every cached file.
func (c *CachedSource) Purge() {
	c.cache.Purge()
}
