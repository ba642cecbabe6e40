package anilist

import (
	"sync"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// MediaLifetime is how long a cached media entry is trusted.
const MediaLifetime = 2 * 24 * time.Hour

type cachedEntry[T any] struct {
	Value    T         `json:"value"`
	CachedAt time.Time `json:"cached_at"`
}

type cacheData[K comparable, T any] struct {
	Entries map[K]cachedEntry[T] `json:"entries"`
}

// cacher is a map persisted as a single gache file.
// Each entry expires lifetime after it was set.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
	lifetime time.Duration
	now      func() time.Time
}

func newMediaCacher(path string) *cacher[int, *Media] {
	return &cacher[int, *Media]{
		internal: gache.New[*cacheData[int, *Media]](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		lifetime: MediaLifetime,
		now:      time.Now,
	}
}

func (c *cacher[K, T]) expired(e cachedEntry[T]) bool {
	return c.now().Sub(e.CachedAt) >= c.lifetime
}

// Get returns the value of key unless it is missing or expired.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, _, err := c.internal.Get()
	if err != nil || data == nil {
		return mo.None[T]()
	}

	e, ok := data.Entries[key]
	if !ok || c.expired(e) {
		return mo.None[T]()
	}
	return mo.Some(e.Value)
}

// Set stores value under key and drops expired entries.
func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, _, err := c.internal.Get()
	if err != nil {
		return err
	}

	if data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]cachedEntry[T])}
	}

	for k, e := range data.Entries {
		if c.expired(e) {
			delete(data.Entries, k)
		}
	}

	data.Entries[key] = cachedEntry[T]{Value: value, CachedAt: c.now()}
	return c.internal.Set(data)
}
