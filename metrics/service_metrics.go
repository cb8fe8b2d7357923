package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "rosie_"

// Operation names
const (
	OpGetByKey    = "get_by_key"
	OpGetAll      = "get_all"
	OpGetPage     = "get_page"
	OpAddOrUpdate = "add_or_update"
	OpDeleteByKey = "delete_by_key"
	OpDeleteAll   = "delete_all"
)

// Operation results
const (
	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultConfigError = "config_error"
	ResultError       = "error"
)

var (
	// Repository operations by outcome
	// Cardinality: repositories × 6 operations × 4 results
	RepositoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "repository_operations_total",
			Help: "Total number of repository operations by result",
		},
		[]string{"repository", "operation", "result"},
	)

	// Repository operation latency
	// Cardinality: repositories × 6 operations
	RepositoryOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "repository_operation_duration_seconds",
			Help: "Time taken by repository operations including all source calls",
		},
		[]string{"repository", "operation"},
	)

	// Cache hits and misses
	// Cardinality: repositories × 2
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Cache lookups by outcome (hit, miss)",
		},
		[]string{"repository", "outcome"},
	)

	// Individual data source failures
	// Cardinality: repositories × sources × operations
	SourceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "source_failures_total",
			Help: "Total number of failed calls to individual data sources",
		},
		[]string{"repository", "source", "operation"},
	)

	// Items held by a cache data source
	// Cardinality: number of cache sources
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of entries stored in a cache data source",
		},
		[]string{"cache"},
	)

	// Entries removed because their TTL elapsed
	// Cardinality: number of cache sources
	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_evictions_total",
			Help: "Total number of expired cache entries evicted",
		},
		[]string{"cache"},
	)

	// Items prefetched into the caches by the page warmer
	// Cardinality: number of repositories
	WarmedItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "warmed_items_total",
			Help: "Total number of items prefetched into the caches",
		},
		[]string{"repository"},
	)
)

// MetricsWriter records metrics for one repository
type MetricsWriter struct {
	repositoryName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified repository
func NewMetricsWriter(repositoryName string) *MetricsWriter {
	return &MetricsWriter{
		repositoryName: repositoryName,
	}
}

// GetRepositoryName returns the repository name
func (mw *MetricsWriter) GetRepositoryName() string {
	return mw.repositoryName
}

// RecordOperation records the outcome and duration of a repository operation
func (mw *MetricsWriter) RecordOperation(operation, result string, duration time.Duration) {
	if mw == nil {
		return
	}
	RepositoryOperationsTotal.WithLabelValues(mw.repositoryName, operation, result).Inc()
	RepositoryOperationDuration.WithLabelValues(mw.repositoryName, operation).Observe(duration.Seconds())
}

// RecordCacheHit records a lookup served from a cache source
func (mw *MetricsWriter) RecordCacheHit() {
	if mw == nil {
		return
	}
	CacheLookupsTotal.WithLabelValues(mw.repositoryName, "hit").Inc()
}

// RecordCacheMiss records a lookup no cache source could serve
func (mw *MetricsWriter) RecordCacheMiss() {
	if mw == nil {
		return
	}
	CacheLookupsTotal.WithLabelValues(mw.repositoryName, "miss").Inc()
}

// RecordSourceFailure records a failed call to a data source
func (mw *MetricsWriter) RecordSourceFailure(source, operation string) {
	if mw == nil {
		return
	}
	SourceFailuresTotal.WithLabelValues(mw.repositoryName, source, operation).Inc()
}

// RecordCacheSize records the number of entries held by a cache source
func RecordCacheSize(cacheName string, size int) {
	CacheSizeGauge.WithLabelValues(cacheName).Set(float64(size))
}

// RecordEvictions records expired entries removed from a cache source
func RecordEvictions(cacheName string, count int) {
	if count <= 0 {
		return
	}
	CacheEvictionsTotal.WithLabelValues(cacheName).Add(float64(count))
}

// RecordWarmedItems records items prefetched into the caches
func (mw *MetricsWriter) RecordWarmedItems(count int) {
	if mw == nil || count <= 0 {
		return
	}
	WarmedItemsTotal.WithLabelValues(mw.repositoryName).Add(float64(count))
}
