package core

import (
	"context"
	"log"

	"github.com/haikuowuya/Rosie/api"
	"github.com/haikuowuya/Rosie/cache"
	"github.com/haikuowuya/Rosie/config"
	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/events"
	"github.com/haikuowuya/Rosie/metrics"
	"github.com/haikuowuya/Rosie/remote"
	"github.com/haikuowuya/Rosie/repository"
	"github.com/haikuowuya/Rosie/warmer"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()
	name := cfg.Repository.Name

	// Cache layer: paginated in-memory cache first, then go-cache and ristretto when enabled
	cacheService, err := cache.NewService[string, api.Record](cfg.Cache, api.RecordKey, cache.WithName(name+"-pages"))
	if err != nil {
		return nil, err
	}
	registry.Register(cacheService)

	// Writes and deletes refresh the cache size gauges
	changes := events.NewSubscriptionManager(16)
	cacheService.RefreshStatsOn(changes)

	sources := repository.Sources[string, api.Record]{
		Caches: cacheService.Caches(),
	}

	// Remote API is both the source of truth for reads and the write target
	var pageReadable datasource.PaginatedReadable[api.Record]
	if cfg.Remote.Enabled {
		remoteSource, err := remote.NewHTTPDataSource[string, api.Record](cfg.Remote, api.RecordKey)
		if err != nil {
			return nil, err
		}
		pageReadable = remoteSource
		sources.Writeables = append(sources.Writeables, remoteSource)
		log.Printf("Setup: records backed by %s at %s", remoteSource.Name(), cfg.Remote.BaseURL)
	} else {
		log.Printf("Setup: no remote source configured, records live in the caches only")
	}

	opts := []repository.Option{
		repository.WithName(name),
		repository.WithMetrics(metrics.NewMetricsWriter(name)),
		repository.WithChangeNotifications(changes),
	}
	if cfg.Repository.ReadCoalescing {
		opts = append(opts, repository.WithReadCoalescing())
	}
	records := repository.NewPaginated[string, api.Record](api.RecordKey, cacheService.PaginatedCache(), pageReadable, sources, opts...)

	// Keep the caches filled from the remote source
	if cfg.Warmer.Enabled && pageReadable != nil {
		registry.Register(warmer.New[api.Record](cfg.Warmer, records, name))
	}

	// Create HTTP server and register it as a service
	server := api.New(cfg.Server.Port, records, cacheService, api.PageLimits{
		Default: cfg.Server.DefaultPageLimit,
		Max:     cfg.Server.MaxPageLimit,
	})
	registry.Register(server)

	return registry, nil
}
