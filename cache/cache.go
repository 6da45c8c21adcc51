package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, concurrency safe key-value cache that evicts the least
// recently used entry once full
type Cache interface {
	// Insert adds or replaces a value, returning true if an older entry was
	// evicted to make room
	Insert(key string, value interface{}) (evicted bool)

	// Retrieve returns the value for key, if present
	Retrieve(key string) (interface{}, bool)

	// Len returns the number of cached entries
	Len() int

	// Clear removes every entry
	Clear()
}

type cache struct {
	entries *lru.Cache[string, interface{}]
}

// NewCache returns a Cache holding at most maxEntries values. A non-positive
// size is treated as 1.
func NewCache(maxEntries int) Cache {
	if maxEntries <= 0 {
		maxEntries = 1
	}

	entries, err := lru.New[string, interface{}](maxEntries)
	if err != nil {
		panic(err)
	}
	return &cache{entries: entries}
}

func (c *cache) Insert(key string, value interface{}) bool {
	return c.entries.Add(key, value)
}

func (c *cache) Retrieve(key string) (interface{}, bool) {
	return c.entries.Get(key)
}

func (c *cache) Len() int {
	return c.entries.Len()
}

func (c *cache) Clear() {
	c.entries.Purge()
}
