// Package cache keeps recently fetched lists in memory and raw API responses on disk.
package cache

import (
	"sync"
	"time"
)

// TTL is how long an in-memory entry stays fresh.
const TTL = 5 * time.Minute

// Slot names a tracked cache entry.
type Slot string

const (
	SlotTopAiring   Slot = "topAiring"
	SlotTopSeasonal Slot = "topSeasonal"
)

// Slots lists every tracked slot.
func Slots() []Slot {
	return []Slot{SlotTopAiring, SlotTopSeasonal}
}

// Entry is a payload with the time it was captured.
type Entry[T any] struct {
	Data     T
	CachedAt time.Time
}

// Valid reports whether the entry is younger than TTL at now.
func (e Entry[T]) Valid(now time.Time) bool {
	return now.Sub(e.CachedAt) < TTL
}

// Cache holds one entry per tracked slot. Entries are replaced wholesale.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[Slot]Entry[T]
	now     func() time.Time
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithClock replaces time.Now.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) { c.now = now }
}

// New returns an empty cache. Every slot starts missing.
func New[T any](opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		entries: make(map[Slot]Entry[T]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NeedsRefresh is true when any tracked slot is absent or stale.
func (c *Cache[T]) NeedsRefresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	for _, slot := range Slots() {
		e, ok := c.entries[slot]
		if !ok || !e.Valid(now) {
			return true
		}
	}
	return false
}

// Update replaces the payload of slot and stamps it with the current time.
func (c *Cache[T]) Update(slot Slot, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[slot] = Entry[T]{Data: data, CachedAt: c.now()}
}

// Get returns the payload of slot. Stale payloads are still returned with fresh set to false.
func (c *Cache[T]) Get(slot Slot) (data T, fresh bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[slot]
	if !ok {
		return data, false, false
	}
	return e.Data, e.Valid(c.now()), true
}

// Age is how long ago slot was updated.
func (c *Cache[T]) Age(slot Slot) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[slot]
	if !ok {
		return 0, false
	}
	return c.now().Sub(e.CachedAt), true
}
