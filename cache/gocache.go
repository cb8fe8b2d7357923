package cache

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/patrickmn/go-cache"
)

// GoCacheDataSource is a cache data source backed by go-cache.
// go-cache owns expiry: it reads the wall clock and removes expired items
// on its own cleanup interval, so WithTimeProvider has no effect here.
type GoCacheDataSource[K comparable, V any] struct {
	cache   *cache.Cache
	keyFunc datasource.KeyFunc[K, V]
	name    string
}

// NewGoCacheDataSource creates a new GoCacheDataSource
// ttl: expiration time for items
// cleanupInterval: interval for cleaning up expired items
func NewGoCacheDataSource[K comparable, V any](ttl, cleanupInterval time.Duration, keyFunc datasource.KeyFunc[K, V], opts ...Option) *GoCacheDataSource[K, V] {
	o := buildOptions("go-cache", opts)
	return &GoCacheDataSource[K, V]{
		cache:   cache.New(ttl, cleanupInterval),
		keyFunc: keyFunc,
		name:    o.name,
	}
}

// Name implements datasource.Named
func (gc *GoCacheDataSource[K, V]) Name() string {
	return gc.name
}

// GetByKey retrieves the value stored under key
func (gc *GoCacheDataSource[K, V]) GetByKey(_ context.Context, key K) (V, bool, error) {
	var zero V
	raw, found := gc.cache.Get(cacheKey(key))
	if !found {
		return zero, false, nil
	}
	value, ok := raw.(V)
	if !ok {
		return zero, false, fmt.Errorf("go-cache: unexpected value type %T for key %v", raw, key)
	}
	return value, true, nil
}

// GetAll returns every unexpired value ordered by key
func (gc *GoCacheDataSource[K, V]) GetAll(_ context.Context) ([]V, error) {
	items := gc.cache.Items()

	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]V, 0, len(keys))
	for _, key := range keys {
		value, ok := items[key].Object.(V)
		if !ok {
			return nil, fmt.Errorf("go-cache: unexpected value type %T for key %s", items[key].Object, key)
		}
		values = append(values, value)
	}
	return values, nil
}

// AddOrUpdate stores the value with the default expiration
func (gc *GoCacheDataSource[K, V]) AddOrUpdate(_ context.Context, value V) error {
	gc.cache.Set(cacheKey(gc.keyFunc(value)), value, cache.DefaultExpiration)
	return nil
}

// DeleteByKey removes the item stored under key
func (gc *GoCacheDataSource[K, V]) DeleteByKey(_ context.Context, key K) error {
	gc.cache.Delete(cacheKey(key))
	return nil
}

// DeleteAll removes all items from cache
func (gc *GoCacheDataSource[K, V]) DeleteAll(_ context.Context) error {
	gc.cache.Flush()
	return nil
}

// IsValid reports whether an unexpired item exists for key
func (gc *GoCacheDataSource[K, V]) IsValid(key K) bool {
	_, found := gc.cache.Get(cacheKey(key))
	return found
}

// ItemCount returns the number of items in cache, expired ones included
func (gc *GoCacheDataSource[K, V]) ItemCount() int {
	return gc.cache.ItemCount()
}

// EvictExpired manually triggers deletion of expired items
func (gc *GoCacheDataSource[K, V]) EvictExpired() int {
	before := gc.cache.ItemCount()
	gc.cache.DeleteExpired()
	return before - gc.cache.ItemCount()
}

// cacheKey renders a key as the string go-cache and ristretto index by
func cacheKey[K comparable](key K) string {
	return datasource.KeyString(key)
}
