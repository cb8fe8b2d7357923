package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/events"
	"github.com/haikuowuya/Rosie/metrics"
)

// Service builds the cache data sources described by Config and manages
// their lifecycle. The paginated in-memory cache is always first; go-cache
// and ristretto follow when enabled.
type Service[K comparable, V any] struct {
	config    Config
	paginated *PaginatedInMemoryCacheDataSource[K, V]
	goCache   *GoCacheDataSource[K, V]
	ristretto *RistrettoCacheDataSource[K, V]
	sweeper   *Sweeper

	changes      events.ISubscriptionManager
	subscription events.ISubscription
}

// NewService creates the cache data sources for the given configuration.
// Options are applied to the in-memory cache.
func NewService[K comparable, V any](config Config, keyFunc datasource.KeyFunc[K, V], opts ...Option) (*Service[K, V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Service[K, V]{
		config:    config,
		paginated: NewPaginatedInMemoryCacheDataSource(config.TTL, keyFunc, opts...),
	}

	if config.GoCache.Enabled {
		s.goCache = NewGoCacheDataSource(config.TTL, config.GoCache.CleanupInterval, keyFunc)
	}

	if config.Ristretto.Enabled {
		r, err := NewRistrettoCacheDataSource(config.TTL, config.Ristretto.MaxItems, keyFunc)
		if err != nil {
			return nil, err
		}
		s.ristretto = r
	}

	if config.Eviction.Mode == EvictionSweep {
		s.sweeper = NewSweeper(config.Eviction.Interval, s.paginated, s.paginated.Name())
	}

	return s, nil
}

// Start implements core.Interface
func (s *Service[K, V]) Start(ctx context.Context) error {
	if s.paginated == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	if s.changes != nil {
		s.subscription = s.changes.Subscribe().Watch(ctx, func(events.Change) {
			s.Stats()
		})
	}
	if s.sweeper != nil {
		return s.sweeper.Start(ctx)
	}
	log.Printf("CacheService: lazy eviction, ttl %s", s.config.TTL)
	return nil
}

// Stop implements core.Interface
func (s *Service[K, V]) Stop() {
	if s.subscription != nil {
		s.subscription.Cancel()
		s.subscription = nil
	}
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.ristretto != nil {
		s.ristretto.Close()
	}
}

// RefreshStatsOn refreshes the cache size gauges whenever m emits a change.
// Must be called before Start.
func (s *Service[K, V]) RefreshStatsOn(m events.ISubscriptionManager) {
	s.changes = m
}

// PaginatedCache returns the paginated in-memory cache
func (s *Service[K, V]) PaginatedCache() *PaginatedInMemoryCacheDataSource[K, V] {
	return s.paginated
}

// Caches returns every configured cache data source in priority order
func (s *Service[K, V]) Caches() []datasource.Cache[K, V] {
	caches := []datasource.Cache[K, V]{s.paginated}
	if s.goCache != nil {
		caches = append(caches, s.goCache)
	}
	if s.ristretto != nil {
		caches = append(caches, s.ristretto)
	}
	return caches
}

// Stats returns statistics about the cache service
func (s *Service[K, V]) Stats() ServiceStats {
	stats := ServiceStats{
		InMemoryItems: s.paginated.Len(),
		Sweeping:      s.sweeper != nil && s.sweeper.IsRunning(),
	}
	metrics.RecordCacheSize(s.paginated.Name(), stats.InMemoryItems)

	if s.goCache != nil {
		stats.GoCacheItems = s.goCache.ItemCount()
		metrics.RecordCacheSize(s.goCache.Name(), stats.GoCacheItems)
	}
	if s.ristretto != nil {
		stats.RistrettoItems = s.ristretto.Len()
		metrics.RecordCacheSize(s.ristretto.Name(), stats.RistrettoItems)
	}
	return stats
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	InMemoryItems  int  `json:"in_memory_items"` // Number of entries in the in-memory cache, stale ones included
	GoCacheItems   int  `json:"go_cache_items"`  // Number of items in go-cache
	RistrettoItems int  `json:"ristretto_items"` // Number of keys tracked by the ristretto cache
	Sweeping       bool `json:"sweeping"`        // Whether a sweeper is running
}
