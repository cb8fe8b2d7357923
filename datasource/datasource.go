package datasource

//go:generate mockgen -destination=mocks/datasource.go . Readable,Writeable,Cache,PaginatedReadable,PaginatedCache

import (
	"context"
	"fmt"
)

// KeyFunc extracts the key that identifies a value
type KeyFunc[K comparable, V any] func(value V) K

// Readable is a data source able to fetch values by key or all at once.
// A missing value is reported as found=false with a nil error.
type Readable[K comparable, V any] interface {
	// GetByKey returns the value stored under key
	GetByKey(ctx context.Context, key K) (V, bool, error)

	// GetAll returns every value the source knows about
	GetAll(ctx context.Context) ([]V, error)
}

// Writeable is a data source able to persist additions, updates and deletions
type Writeable[K comparable, V any] interface {
	// AddOrUpdate inserts the value or replaces the one stored under the same key
	AddOrUpdate(ctx context.Context, value V) error

	// DeleteByKey removes the value stored under key. Deleting a missing key is not an error
	DeleteByKey(ctx context.Context, key K) error

	// DeleteAll removes every value
	DeleteAll(ctx context.Context) error
}

// Cache is a readable and writeable source with a notion of freshness.
// GetByKey and GetAll only return fresh entries.
type Cache[K comparable, V any] interface {
	Readable[K, V]
	Writeable[K, V]

	// IsValid reports whether the entry stored under key is present and fresh.
	// It never mutates the cache.
	IsValid(key K) bool
}

// PaginatedReadable is a data source able to serve a window of its values
type PaginatedReadable[V any] interface {
	// GetPage returns the values in the requested window. Offset and limit
	// are interpreted by the source.
	GetPage(ctx context.Context, page Page) (PaginatedCollection[V], error)
}

// PaginatedCache is a cache that also stores ordered pages of values
type PaginatedCache[K comparable, V any] interface {
	Cache[K, V]

	// GetPage returns the cached window. found is false when the window is
	// not fully present or no longer fresh.
	GetPage(ctx context.Context, page Page) (collection PaginatedCollection[V], found bool, err error)

	// AddOrUpdatePage stores values at the positions of the page, preserving order
	AddOrUpdatePage(ctx context.Context, page Page, values []V, hasMore bool) error

	// IsPageValid reports whether GetPage would currently hit
	IsPageValid(page Page) bool
}

// Named is implemented by sources that want to be identified by name in
// failure reports and metrics
type Named interface {
	Name() string
}

// KeyString renders key as a string that differs for every distinct key of
// type K, for stores and groups indexed by string
func KeyString[K comparable](key K) string {
	return fmt.Sprintf("%T:%#v", key, key)
}
