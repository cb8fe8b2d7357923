package warmer

import (
	"fmt"
	"time"
)

// Config configures periodic prefetching of pages into the caches
type Config struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`  // Time between warm-ups, should be below the cache ttl
	PageSize int           `yaml:"page_size"` // Items requested per page
	MaxPages int           `yaml:"max_pages"` // Pages per warm-up, 0 walks until the last page
}

// DefaultConfig returns a disabled warmer
func DefaultConfig() Config {
	return Config{
		Interval: 4 * time.Minute,
		PageSize: 100,
	}
}

// Validate checks an enabled warmer configuration
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Interval <= 0 {
		return fmt.Errorf("warmer interval must be positive, got %s", c.Interval)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("warmer page_size must be positive, got %d", c.PageSize)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("warmer max_pages must not be negative, got %d", c.MaxPages)
	}
	return nil
}
