package cache

import (
	"sync"

	"github.com/interactiv/extension/pkg/native"
)

// ModelCache memoizes model name hashes so the per-tick scan does not rehash
// every configured prop name each frame.
type ModelCache struct {
	m      sync.RWMutex
	hashes map[string]uint32
}

func NewModelCache() *ModelCache {
	return &ModelCache{
		hashes: make(map[string]uint32),
	}
}

// Hash returns the engine hash of a model name.
func (c *ModelCache) Hash(name string) uint32 {
	c.m.RLock()
	h, ok := c.hashes[name]
	c.m.RUnlock()
	if ok {
		return h
	}

	h = native.Joaat(name)
	c.m.Lock()
	c.hashes[name] = h
	c.m.Unlock()
	return h
}

// Len returns the number of cached names.
func (c *ModelCache) Len() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return len(c.hashes)
}

func (c *ModelCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.hashes = make(map[string]uint32)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  uint64
}

func (c *SafeCounter) Value() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v uint64) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Inc increments the counter and returns the new value.
func (c *SafeCounter) Inc() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v++
	return c.v
}
