package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/metrics"
	"github.com/haikuowuya/Rosie/timeprovider"
)

// entry is a cached value together with the time it was stored
type entry[V any] struct {
	value      V
	insertedAt time.Time
	seq        uint64
}

// InMemoryCacheDataSource is a map-backed cache whose entries expire after a
// fixed TTL. Expired entries are removed when they are next read; nothing
// runs in the background unless a Sweeper is attached.
type InMemoryCacheDataSource[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[V]
	seq     uint64

	ttl     time.Duration
	keyFunc datasource.KeyFunc[K, V]
	clock   timeprovider.TimeProvider
	name    string
}

// NewInMemoryCacheDataSource creates an empty cache with the given TTL
func NewInMemoryCacheDataSource[K comparable, V any](ttl time.Duration, keyFunc datasource.KeyFunc[K, V], opts ...Option) *InMemoryCacheDataSource[K, V] {
	o := buildOptions("in-memory-cache", opts)
	return &InMemoryCacheDataSource[K, V]{
		entries: make(map[K]*entry[V]),
		ttl:     ttl,
		keyFunc: keyFunc,
		clock:   o.clock,
		name:    o.name,
	}
}

// Name implements datasource.Named
func (c *InMemoryCacheDataSource[K, V]) Name() string {
	return c.name
}

// TTL returns the configured time to live
func (c *InMemoryCacheDataSource[K, V]) TTL() time.Duration {
	return c.ttl
}

// GetByKey returns the value stored under key if it is still fresh.
// A stale entry is removed and reported as missing.
func (c *InMemoryCacheDataSource[K, V]) GetByKey(_ context.Context, key K) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false, nil
	}
	if !c.isFresh(e.insertedAt, c.clock.Now()) {
		delete(c.entries, key)
		metrics.RecordEvictions(c.name, 1)
		return zero, false, nil
	}
	return e.value, true, nil
}

// GetAll returns every fresh value in insertion order and removes stale entries
func (c *InMemoryCacheDataSource[K, V]) GetAll(_ context.Context) ([]V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked(c.clock.Now())
	return c.valuesLocked(), nil
}

// AddOrUpdate stores the value stamped with the current time
func (c *InMemoryCacheDataSource[K, V]) AddOrUpdate(_ context.Context, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(c.keyFunc(value), value, c.clock.Now())
	return nil
}

// DeleteByKey removes the entry stored under key
func (c *InMemoryCacheDataSource[K, V]) DeleteByKey(_ context.Context, key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// DeleteAll removes every entry
func (c *InMemoryCacheDataSource[K, V]) DeleteAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	return nil
}

// IsValid reports whether a fresh entry exists for key without removing stale ones
func (c *InMemoryCacheDataSource[K, V]) IsValid(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && c.isFresh(e.insertedAt, c.clock.Now())
}

// Len returns the number of stored entries, stale ones included
func (c *InMemoryCacheDataSource[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes every stale entry and returns how many were removed
func (c *InMemoryCacheDataSource[K, V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictExpiredLocked(c.clock.Now())
}

// isFresh implements the TTL rule: an entry is valid while now - insertedAt <= ttl
func (c *InMemoryCacheDataSource[K, V]) isFresh(insertedAt, now time.Time) bool {
	return now.Sub(insertedAt) <= c.ttl
}

func (c *InMemoryCacheDataSource[K, V]) putLocked(key K, value V, now time.Time) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.insertedAt = now
		return
	}
	c.seq++
	c.entries[key] = &entry[V]{value: value, insertedAt: now, seq: c.seq}
}

func (c *InMemoryCacheDataSource[K, V]) lookupLocked(key K, now time.Time) (V, bool) {
	var zero V
	e, ok := c.entries[key]
	if !ok || !c.isFresh(e.insertedAt, now) {
		return zero, false
	}
	return e.value, true
}

func (c *InMemoryCacheDataSource[K, V]) evictExpiredLocked(now time.Time) int {
	evicted := 0
	for key, e := range c.entries {
		if !c.isFresh(e.insertedAt, now) {
			delete(c.entries, key)
			evicted++
		}
	}
	metrics.RecordEvictions(c.name, evicted)
	metrics.RecordCacheSize(c.name, len(c.entries))
	return evicted
}

func (c *InMemoryCacheDataSource[K, V]) valuesLocked() []V {
	ordered := make([]*entry[V], 0, len(c.entries))
	for _, e := range c.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	values := make([]V, 0, len(ordered))
	for _, e := range ordered {
		values = append(values, e.value)
	}
	return values
}
