package repository

import (
	"context"
	"log"
	"reflect"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/metrics"
)

// PaginatedRepository is a Repository that can also serve windows of
// values. Pages are cached in a paginated cache and fetched from a
// paginated readable source on miss.
type PaginatedRepository[K comparable, V any] struct {
	*Repository[K, V]

	pageCache    datasource.PaginatedCache[K, V]
	pageReadable datasource.PaginatedReadable[V]
}

// NewPaginated creates a paginated repository. pageCache and pageReadable
// may be nil. pageCache is also used as the highest priority cache of the
// embedded Repository, and pageReadable as its highest priority readable
// when it implements datasource.Readable.
func NewPaginated[K comparable, V any](
	keyFunc datasource.KeyFunc[K, V],
	pageCache datasource.PaginatedCache[K, V],
	pageReadable datasource.PaginatedReadable[V],
	sources Sources[K, V],
	opts ...Option,
) *PaginatedRepository[K, V] {
	if pageCache != nil && !containsSource(sources.Caches, pageCache) {
		sources.Caches = append([]datasource.Cache[K, V]{pageCache}, sources.Caches...)
	}
	if readable, ok := pageReadable.(datasource.Readable[K, V]); ok && !containsSource(sources.Readables, readable) {
		sources.Readables = append([]datasource.Readable[K, V]{readable}, sources.Readables...)
	}

	return &PaginatedRepository[K, V]{
		Repository:   New(keyFunc, sources, opts...),
		pageCache:    pageCache,
		pageReadable: pageReadable,
	}
}

// GetPage returns the window of values described by page. A fully valid
// cached window is returned as is. Otherwise the page is fetched from the
// paginated readable, stored in the page cache and returned exactly as the
// readable produced it. found is false only when the policy forbids the
// readable and the cache missed.
func (r *PaginatedRepository[K, V]) GetPage(ctx context.Context, page datasource.Page, policy ...ReadPolicy) (collection datasource.PaginatedCollection[V], found bool, err error) {
	start := time.Now()
	defer func() { r.record(metrics.OpGetPage, found, err, start) }()

	p := readPolicy(policy)
	useCache := p.useCaches() && r.pageCache != nil
	useReadable := p.useReadables() && r.pageReadable != nil
	if !useCache && !useReadable {
		return collection, false, newConfigurationError(metrics.OpGetPage, p)
	}

	if useCache {
		cached, hit, err := r.pageCache.GetPage(ctx, page)
		switch {
		case err != nil:
			r.sourceFailure(sourceName(r.pageCache, "cache", 0), metrics.OpGetPage, err)
		case hit:
			r.metrics.RecordCacheHit()
			return cached, true, nil
		}
		r.metrics.RecordCacheMiss()
	}

	if !useReadable {
		return collection, false, nil
	}

	collection, err = r.pageReadable.GetPage(ctx, page)
	if err != nil {
		return collection, false, r.sourceFailure(sourceName(r.pageReadable, "readable", 0), metrics.OpGetPage, err)
	}

	if r.pageCache != nil {
		if err := r.pageCache.AddOrUpdatePage(ctx, page, collection.Items, collection.HasMore); err != nil {
			log.Printf("Repository: %s failed to store page %s: %v", r.name, page, err)
		}
	}
	r.populateCachesExcept(ctx, collection.Items, func(c datasource.Cache[K, V]) bool {
		return r.pageCache != nil && sameSource(c, r.pageCache)
	})

	return collection, true, nil
}

func containsSource[T any](list []T, s any) bool {
	for _, item := range list {
		if sameSource(item, s) {
			return true
		}
	}
	return false
}

// sameSource compares two sources by identity. Sources of non-comparable
// dynamic types are never considered equal.
func sameSource(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
