package research

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/whoisrunning/civic-research/pkg/research"
)

// DefaultCacheTTL keeps research responses for a day. Civic queries are
// slow-moving and the upstream bills per query.
const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	resp    *research.Response
	written time.Time
}

// Cache is an in-memory TTL cache for research responses, keyed by the
// serialized request. Expired entries are evicted lazily on lookup. There
// is no in-flight deduplication: two concurrent identical requests both go
// upstream and the second write wins.
type Cache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// NewCache creates a Cache with the given TTL. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		nowFunc: time.Now,
	}
}

// cacheKey serializes the request. Field order is fixed by the struct
// definition, so identical requests always produce identical keys.
func cacheKey(req research.Request) string {
	b, err := json.Marshal(req)
	if err != nil {
		// Request is plain strings; marshal cannot fail in practice.
		return req.Query + "\x00" + req.CandidateName + "\x00" + req.Context
	}
	return string(b)
}

// Get returns the cached response for req, or nil if absent or expired.
func (c *Cache) Get(req research.Request) *research.Response {
	key := cacheKey(req)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	if c.nowFunc().Sub(entry.written) >= c.ttl {
		c.mu.Lock()
		// Recheck under write lock; a fresh write may have landed.
		if entry, ok = c.entries[key]; ok && c.nowFunc().Sub(entry.written) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil
	}

	return entry.resp
}

// Put stores a response for req, overwriting any previous entry.
func (c *Cache) Put(req research.Request, resp *research.Response) {
	key := cacheKey(req)
	c.mu.Lock()
	c.entries[key] = cacheEntry{resp: resp, written: c.nowFunc()}
	c.mu.Unlock()
}

// Len reports the number of stored entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
