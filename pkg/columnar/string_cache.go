package columnar

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// StringCache interns category strings process-wide and hands out stable
// global ids for them. Columns whose codes come from the same cache can be
// compared and merged without re-encoding.
type StringCache struct {
	id      uuid.UUID
	mu      sync.RWMutex
	ids     map[string]uint32
	strings []string
	hits    int64
	misses  int64
}

var globalStringCache = NewStringCache()

// GlobalStringCache returns the process-wide cache.
func GlobalStringCache() *StringCache {
	return globalStringCache
}

// NewStringCache creates an empty cache with a fresh identity.
func NewStringCache() *StringCache {
	return &StringCache{
		id:  uuid.New(),
		ids: make(map[string]uint32, 1024),
	}
}

// ID identifies the cache. Global mappings from different caches never mix.
func (c *StringCache) ID() uuid.UUID { return c.id }

// Intern returns the global id of s, assigning the next id on first sight.
func (c *StringCache) Intern(s string) uint32 {
	c.mu.RLock()
	if id, ok := c.ids[s]; ok {
		c.mu.RUnlock()
		atomic.AddInt64(&c.hits, 1)
		return id
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if id, ok := c.ids[s]; ok {
		atomic.AddInt64(&c.hits, 1)
		return id
	}

	id := uint32(len(c.strings))
	c.ids[s] = id
	c.strings = append(c.strings, s)
	atomic.AddInt64(&c.misses, 1)
	return id
}

// Lookup returns the string interned under id.
func (c *StringCache) Lookup(id uint32) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(id) >= len(c.strings) {
		return "", false
	}
	return c.strings[id], true
}

// Len returns the number of interned strings.
func (c *StringCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strings)
}

// Stats returns cache statistics
func (c *StringCache) Stats() (size, hits, misses int64) {
	return int64(c.Len()),
		atomic.LoadInt64(&c.hits),
		atomic.LoadInt64(&c.misses)
}
