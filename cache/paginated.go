package cache

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
)

// PaginatedInMemoryCacheDataSource is an InMemoryCacheDataSource that also
// remembers the position of every value stored through AddOrUpdatePage, so
// windows of an ordered collection can be served from memory.
type PaginatedInMemoryCacheDataSource[K comparable, V any] struct {
	*InMemoryCacheDataSource[K, V]

	positions map[int]K
	// end is the total number of items, known once a page reported hasMore=false
	end      int
	endKnown bool
	endAt    time.Time
}

// NewPaginatedInMemoryCacheDataSource creates an empty paginated cache with the given TTL
func NewPaginatedInMemoryCacheDataSource[K comparable, V any](ttl time.Duration, keyFunc datasource.KeyFunc[K, V], opts ...Option) *PaginatedInMemoryCacheDataSource[K, V] {
	opts = append([]Option{WithName("paginated-in-memory-cache")}, opts...)
	return &PaginatedInMemoryCacheDataSource[K, V]{
		InMemoryCacheDataSource: NewInMemoryCacheDataSource(ttl, keyFunc, opts...),
		positions:               make(map[int]K),
	}
}

// GetPage returns the cached window. found is false unless every position of
// the window holds a fresh entry, or the window starts past a known end.
func (c *PaginatedInMemoryCacheDataSource[K, V]) GetPage(_ context.Context, page datasource.Page) (datasource.PaginatedCollection[V], bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !c.windowValidLocked(page, now) {
		c.purgeWindowLocked(page, now)
		return datasource.PaginatedCollection[V]{}, false, nil
	}

	upper := c.upperLocked(page)
	items := make([]V, 0, max(upper-page.Offset, 0))
	for pos := page.Offset; pos < upper; pos++ {
		value, _ := c.lookupLocked(c.positions[pos], now)
		items = append(items, value)
	}

	hasMore := !(c.endKnown && windowEnd(page) >= c.end)
	return datasource.NewPaginatedCollection(page, items, hasMore), true, nil
}

// AddOrUpdatePage stores values at positions offset..offset+len(values)-1.
// A page at offset 0 starts a new listing and forgets previous positions.
func (c *PaginatedInMemoryCacheDataSource[K, V]) AddOrUpdatePage(_ context.Context, page datasource.Page, values []V, hasMore bool) error {
	if page.Offset < 0 || len(values) > math.MaxInt-page.Offset {
		return fmt.Errorf("%s: page %s cannot hold %d values", c.name, page, len(values))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if page.Offset == 0 {
		c.positions = make(map[int]K)
		c.endKnown = false
	}

	for i, value := range values {
		key := c.keyFunc(value)
		c.putLocked(key, value, now)
		c.positions[page.Offset+i] = key
	}

	last := page.Offset + len(values)
	switch {
	case !hasMore:
		c.end = last
		c.endKnown = true
		c.endAt = now
		for pos := range c.positions {
			if pos >= last {
				delete(c.positions, pos)
			}
		}
	case c.endKnown && last >= c.end:
		c.endKnown = false
	}
	return nil
}

// IsPageValid reports whether GetPage would hit, without mutating the cache
func (c *PaginatedInMemoryCacheDataSource[K, V]) IsPageValid(page datasource.Page) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.windowValidLocked(page, c.clock.Now())
}

// DeleteAll removes every entry and every known position
func (c *PaginatedInMemoryCacheDataSource[K, V]) DeleteAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.positions = make(map[int]K)
	c.endKnown = false
	return nil
}

// EvictExpired removes stale entries and the positions pointing at them
func (c *PaginatedInMemoryCacheDataSource[K, V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := c.evictExpiredLocked(now)
	for pos, key := range c.positions {
		if _, ok := c.entries[key]; !ok {
			delete(c.positions, pos)
		}
	}
	if c.endKnown && !c.isFresh(c.endAt, now) {
		c.endKnown = false
	}
	return evicted
}

// windowEnd returns the exclusive end of the window, saturating at math.MaxInt
func windowEnd(page datasource.Page) int {
	if page.Limit > math.MaxInt-page.Offset {
		return math.MaxInt
	}
	return page.Offset + page.Limit
}

// upperLocked returns the exclusive upper position of the window, clipped to a known end
func (c *PaginatedInMemoryCacheDataSource[K, V]) upperLocked(page datasource.Page) int {
	upper := windowEnd(page)
	if c.endKnown && upper > c.end {
		upper = c.end
	}
	return upper
}

func (c *PaginatedInMemoryCacheDataSource[K, V]) windowValidLocked(page datasource.Page, now time.Time) bool {
	if page.Offset < 0 || page.Limit <= 0 {
		return false
	}
	if c.endKnown && !c.isFresh(c.endAt, now) {
		return false
	}

	upper := c.upperLocked(page)
	if upper <= page.Offset {
		// Empty window: only a window past a known end is a hit
		return c.endKnown
	}
	if upper-page.Offset > len(c.positions) {
		return false
	}
	for pos := page.Offset; pos < upper; pos++ {
		key, ok := c.positions[pos]
		if !ok {
			return false
		}
		if _, fresh := c.lookupLocked(key, now); !fresh {
			return false
		}
	}
	return true
}

// purgeWindowLocked drops stale entries referenced by the window. It walks
// whichever is smaller, the window or the known positions.
func (c *PaginatedInMemoryCacheDataSource[K, V]) purgeWindowLocked(page datasource.Page, now time.Time) {
	if page.Offset < 0 || page.Limit <= 0 {
		return
	}
	end := windowEnd(page)

	purge := func(key K) {
		if e, exists := c.entries[key]; exists && !c.isFresh(e.insertedAt, now) {
			delete(c.entries, key)
		}
	}

	if end-page.Offset > len(c.positions) {
		for pos, key := range c.positions {
			if pos >= page.Offset && pos < end {
				purge(key)
			}
		}
		return
	}
	for pos := page.Offset; pos < end; pos++ {
		if key, ok := c.positions[pos]; ok {
			purge(key)
		}
	}
}
