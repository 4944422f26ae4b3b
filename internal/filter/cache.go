package filter

import "sync"

const defaultCacheSize = 32

// countCache remembers recent Count results. Oldest entries are evicted first.
type countCache struct {
	mu    sync.Mutex
	max   int
	order []string
	vals  map[string]int
}

func newCountCache(size int) *countCache {
	return &countCache{max: size, vals: map[string]int{}}
}

func (c *countCache) get(text string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.vals[text]
	return n, ok
}

func (c *countCache) put(text string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.vals[text]; ok {
		c.vals[text] = n
		return
	}
	if c.max > 0 && len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.vals, oldest)
	}
	c.order = append(c.order, text)
	c.vals[text] = n
}

func (c *countCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vals)
}
