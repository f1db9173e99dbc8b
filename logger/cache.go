package logger

import (
	"sync"
)

// extrasCache memoizes formatted extras strings keyed by the raw
// pairs. Eviction is insertion-order — once full, the oldest quarter
// of entries is dropped in one sweep — deliberately not LRU: a Get
// does not refresh an entry's position.
type extrasCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]string
	order    []string
}

func newExtrasCache(capacity int) *extrasCache {
	return &extrasCache{
		capacity: capacity,
		entries:  make(map[string]string, capacity),
	}
}

func (c *extrasCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *extrasCache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}

	if len(c.entries) >= c.capacity {
		evict := c.capacity / 4
		if evict < 1 {
			evict = 1
		}
		if evict > len(c.order) {
			evict = len(c.order)
		}
		for _, old := range c.order[:evict] {
			delete(c.entries, old)
		}
		c.order = append(c.order[:0], c.order[evict:]...)
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

func (c *extrasCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
