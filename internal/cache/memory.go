package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds pages in process memory with per-entry expiry
type MemoryCache struct {
	pages *gocache.Cache
}

// NewMemoryCache creates a memory cache; ttl 0 keeps entries until cleared
func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryCache{pages: gocache.New(ttl, cleanupInterval)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.pages.Get(key)
	if !found {
		return nil, false
	}
	page, ok := val.([]byte)
	return page, ok
}

// Set stores value; ttl 0 uses the cache default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.pages.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.pages.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.pages.Flush()
	return nil
}

// Len returns the number of live entries
func (c *MemoryCache) Len() int {
	return c.pages.ItemCount()
}
