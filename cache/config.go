package cache

import (
	"fmt"
	"time"
)

// EvictionMode selects how expired entries leave an in-memory cache
type EvictionMode string

const (
	// EvictionLazy removes expired entries only when they are accessed
	EvictionLazy EvictionMode = "lazy"
	// EvictionSweep additionally removes expired entries on a fixed interval
	EvictionSweep EvictionMode = "sweep"
)

// Config represents cache configuration
type Config struct {
	// TTL time to live of entries in every cache data source
	TTL time.Duration `yaml:"ttl"`

	// Eviction configuration for the in-memory cache
	Eviction EvictionConfig `yaml:"eviction"`

	// GoCache configuration
	GoCache GoCacheConfig `yaml:"go_cache"`

	// Ristretto configuration
	Ristretto RistrettoConfig `yaml:"ristretto"`
}

// EvictionConfig configures removal of expired in-memory entries
type EvictionConfig struct {
	// Mode is either "lazy" or "sweep". Empty means lazy
	Mode EvictionMode `yaml:"mode"`

	// Interval between sweeps, only used in sweep mode
	Interval time.Duration `yaml:"interval"`
}

// GoCacheConfig configuration for the secondary go-cache data source
type GoCacheConfig struct {
	// Enabled whether the go-cache data source is added after the in-memory cache
	Enabled bool `yaml:"enabled"`

	// CleanupInterval interval for cleaning up expired items
	// Should be less than TTL
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RistrettoConfig configuration for the bounded ristretto data source
type RistrettoConfig struct {
	// Enabled whether the ristretto data source is added after the other caches
	Enabled bool `yaml:"enabled"`

	// MaxItems upper bound of entries kept
	MaxItems int64 `yaml:"max_items"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		TTL: 5 * time.Minute,
		Eviction: EvictionConfig{
			Mode:     EvictionLazy,
			Interval: time.Minute,
		},
		GoCache: GoCacheConfig{
			Enabled:         false,
			CleanupInterval: 10 * time.Minute,
		},
		Ristretto: RistrettoConfig{
			Enabled:  false,
			MaxItems: 10000,
		},
	}
}

// Validate checks the configuration for values no cache can be built from
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.TTL)
	}
	switch c.Eviction.Mode {
	case "", EvictionLazy:
	case EvictionSweep:
		if c.Eviction.Interval <= 0 {
			return fmt.Errorf("sweep eviction requires a positive interval, got %s", c.Eviction.Interval)
		}
	default:
		return fmt.Errorf("unknown eviction mode %q", c.Eviction.Mode)
	}
	if c.GoCache.Enabled && c.GoCache.CleanupInterval <= 0 {
		return fmt.Errorf("go_cache cleanup_interval must be positive, got %s", c.GoCache.CleanupInterval)
	}
	if c.Ristretto.Enabled && c.Ristretto.MaxItems <= 0 {
		return fmt.Errorf("ristretto max_items must be positive, got %d", c.Ristretto.MaxItems)
	}
	return nil
}
