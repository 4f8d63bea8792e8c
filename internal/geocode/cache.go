package geocode

import "sync"

// Cache memoizes resolved addresses for the lifetime of one run.
// Lookups are by the exact address string; near-duplicate addresses with
// different casing or whitespace are cache misses.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Result
	hits    int64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Result)}
}

// Get returns the cached result for an address, if any.
func (c *Cache) Get(address string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[address]
	if ok {
		c.hits++
	}
	return result, ok
}

// Put stores a resolved address.
func (c *Cache) Put(address string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = result
}

// Hits returns the number of cache hits so far.
func (c *Cache) Hits() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Len returns the number of cached addresses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
