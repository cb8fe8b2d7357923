package remote

import (
	"fmt"
	"net/url"
	"time"
)

// Config configures an HTTP data source
type Config struct {
	Enabled   bool            `yaml:"enabled"`
	Name      string          `yaml:"name"`
	BaseURL   string          `yaml:"base_url"`
	Retry     RetryOptions    `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth"`
}

// RateLimitConfig represents a simple rpm + burst pair.
// Zero requests per minute disables rate limiting.
type RateLimitConfig struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`
}

// DefaultConfig returns a disabled remote source with default retry options
func DefaultConfig() Config {
	return Config{
		Name:  "remote",
		Retry: DefaultRetryOptions(),
	}
}

// Validate checks that an enabled source has a usable base URL
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid remote base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("remote base_url must be http or https, got %q", c.BaseURL)
	}
	if c.Retry.MaxRetries < 1 {
		return fmt.Errorf("remote retry.max_retries must be at least 1, got %d", c.Retry.MaxRetries)
	}
	if c.RateLimit.RateLimitPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("remote rate_limit values must not be negative")
	}
	for _, key := range c.Auth.Keys {
		if key == "" {
			return fmt.Errorf("remote auth.keys must not contain empty keys")
		}
	}
	return nil
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int           `yaml:"max_retries"`
	BaseBackoff       time.Duration `yaml:"base_backoff"`
	LogPrefix         string        `yaml:"-"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"` // Timeout for establishing connection
	RequestTimeout    time.Duration `yaml:"request_timeout"`    // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}
