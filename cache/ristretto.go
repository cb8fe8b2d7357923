package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/haikuowuya/Rosie/datasource"
)

// RistrettoCacheDataSource is a bounded cache data source backed by ristretto.
// Ristretto may refuse or evict entries under memory pressure, which the
// repository sees as ordinary misses. Ristretto cannot enumerate its
// contents, so the keys written through this source are tracked on the side
// to serve GetAll.
type RistrettoCacheDataSource[K comparable, V any] struct {
	cache   *ristretto.Cache[string, V]
	ttl     time.Duration
	keyFunc datasource.KeyFunc[K, V]
	name    string

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewRistrettoCacheDataSource creates a ristretto-backed cache holding at most maxItems entries
func NewRistrettoCacheDataSource[K comparable, V any](ttl time.Duration, maxItems int64, keyFunc datasource.KeyFunc[K, V], opts ...Option) (*RistrettoCacheDataSource[K, V], error) {
	o := buildOptions("ristretto", opts)
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters:        maxItems * 10, // ~10x expected items
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &RistrettoCacheDataSource[K, V]{
		cache:   c,
		ttl:     ttl,
		keyFunc: keyFunc,
		name:    o.name,
		keys:    make(map[string]struct{}),
	}, nil
}

// Name implements datasource.Named
func (r *RistrettoCacheDataSource[K, V]) Name() string {
	return r.name
}

// GetByKey retrieves the value stored under key
func (r *RistrettoCacheDataSource[K, V]) GetByKey(_ context.Context, key K) (V, bool, error) {
	sk := cacheKey(key)
	value, found := r.cache.Get(sk)
	if !found {
		r.forget(sk)
	}
	return value, found, nil
}

// GetAll returns every value still held, ordered by key
func (r *RistrettoCacheDataSource[K, V]) GetAll(_ context.Context) ([]V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.keys))
	for key := range r.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]V, 0, len(keys))
	for _, key := range keys {
		value, found := r.cache.Get(key)
		if !found {
			delete(r.keys, key)
			continue
		}
		values = append(values, value)
	}
	return values, nil
}

// AddOrUpdate stores the value with the configured TTL. The write is
// flushed before returning so it is visible to the next read.
func (r *RistrettoCacheDataSource[K, V]) AddOrUpdate(_ context.Context, value V) error {
	sk := cacheKey(r.keyFunc(value))
	if !r.cache.SetWithTTL(sk, value, 1, r.ttl) {
		return fmt.Errorf("ristretto: write for key %s was dropped", sk)
	}
	r.cache.Wait()

	r.mu.Lock()
	r.keys[sk] = struct{}{}
	r.mu.Unlock()
	return nil
}

// DeleteByKey removes the value stored under key
func (r *RistrettoCacheDataSource[K, V]) DeleteByKey(_ context.Context, key K) error {
	sk := cacheKey(key)
	r.cache.Del(sk)
	r.forget(sk)
	return nil
}

// DeleteAll removes every value
func (r *RistrettoCacheDataSource[K, V]) DeleteAll(_ context.Context) error {
	r.cache.Clear()

	r.mu.Lock()
	r.keys = make(map[string]struct{})
	r.mu.Unlock()
	return nil
}

// IsValid reports whether ristretto still holds a value for key
func (r *RistrettoCacheDataSource[K, V]) IsValid(key K) bool {
	_, found := r.cache.Get(cacheKey(key))
	return found
}

// Len returns the number of tracked keys, including ones ristretto may have dropped
func (r *RistrettoCacheDataSource[K, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Close shuts down the cache and releases resources
func (r *RistrettoCacheDataSource[K, V]) Close() {
	r.cache.Close()
}

func (r *RistrettoCacheDataSource[K, V]) forget(key string) {
	r.mu.Lock()
	delete(r.keys, key)
	r.mu.Unlock()
}
