package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is an in-process key/value store whose entries expire on their own.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

// Set stores value under key. An optional expiration overrides the default one.
func (c *Cache) Set(key string, value any, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

// GetOrSet returns the value stored under key. When the key is absent or expired the result of create
// is stored first; if another caller stored a value in the meantime, that value wins. The entry's lifetime
// is refreshed on every call.
func (c *Cache) GetOrSet(key string, create func() any) any {
	if value, ok := c.Cache.Get(key); ok {
		c.Cache.Set(key, value, cache.DefaultExpiration)
		return value
	}

	value := create()
	if err := c.Cache.Add(key, value, cache.DefaultExpiration); err != nil {
		if existing, ok := c.Cache.Get(key); ok {
			return existing
		}
	}

	return value
}

func CacheKeyClient(ip string) string {
	return "client:" + ip
}
