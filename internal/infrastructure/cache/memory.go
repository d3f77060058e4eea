package cache

import (
	"strings"
	"time"

	"laza-storefront/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

// memoryCache is a go-cache store scoped to one key namespace. Keys are stored
// as "<namespace>:<key>" so several services can share a process without
// colliding, and callers only ever see their own unprefixed keys.
type memoryCache struct {
	store  *gocache.Cache
	prefix string
}

// NewMemoryCache creates an in-memory cache for the given namespace.
// ttl is the default lifetime; cleanupInterval is how often expired entries are
// swept (and their eviction callbacks run).
func NewMemoryCache(namespace string, ttl, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store:  gocache.New(ttl, cleanupInterval),
		prefix: namespace + ":",
	}
}

func (c *memoryCache) key(k string) string {
	return c.prefix + k
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(c.key(key))
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(c.key(key), value, duration)
}

func (c *memoryCache) Replace(key string, value interface{}, duration time.Duration) error {
	return c.store.Replace(c.key(key), value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(c.key(key))
}

func (c *memoryCache) OnEvicted(fn func(key string, value interface{})) {
	c.store.OnEvicted(func(k string, v interface{}) {
		if !strings.HasPrefix(k, c.prefix) {
			return
		}
		fn(strings.TrimPrefix(k, c.prefix), v)
	})
}

// ItemCount counts unexpired entries only; go-cache's own count includes
// entries still waiting for the janitor.
func (c *memoryCache) ItemCount() int {
	return len(c.store.Items())
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}
