package utils

import "sync"

// Cache is a generic, thread-safe memo table. Loads run outside the lock, so
// a loader may itself consult the cache; when two loads race for the same key
// the first value stored wins and both callers observe it.
type Cache[K comparable, V any] struct {
	items map[K]V
	mutex sync.RWMutex
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, exists := c.items[key]
	return value, exists
}

// Store saves value unless the key is already present and returns the
// value the cache holds afterwards
func (c *Cache[K, V]) Store(key K, value V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, exists := c.items[key]; exists {
		return existing
	}
	c.items[key] = value
	return value
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Errors from load are returned and not cached.
func (c *Cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Store(key, value), nil
}
