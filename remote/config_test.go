package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfig_Unmarshal(t *testing.T) {
	raw := `
enabled: true
name: users-api
base_url: https://api.example.com/users
retry:
  max_retries: 5
  base_backoff: 250ms
  connection_timeout: 2s
  request_timeout: 10s
rate_limit:
  rate_limit_per_minute: 120
  burst: 4
auth:
  header: X-API-Key
  keys: [primary, secondary]
  backoff: 1m
`
	cfg := DefaultConfig()
	assert.NoError(t, yaml.Unmarshal([]byte(raw), &cfg))
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "users-api", cfg.Name)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseBackoff)
	assert.Equal(t, 10*time.Second, cfg.Retry.RequestTimeout)
	assert.Equal(t, RateLimitConfig{RateLimitPerMinute: 120, Burst: 4}, cfg.RateLimit)
	assert.Equal(t, AuthConfig{Header: "X-API-Key", Keys: []string{"primary", "secondary"}, Backoff: time.Minute}, cfg.Auth)
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	valid.Enabled = true
	valid.BaseURL = "http://localhost:8080/items"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "disabled skips checks", mutate: func(c *Config) { c.Enabled = false; c.BaseURL = "" }},
		{name: "missing scheme", mutate: func(c *Config) { c.BaseURL = "localhost/items" }, wantErr: true},
		{name: "no attempts", mutate: func(c *Config) { c.Retry.MaxRetries = 0 }, wantErr: true},
		{name: "api keys", mutate: func(c *Config) { c.Auth.Keys = []string{"k1"} }},
		{name: "empty api key", mutate: func(c *Config) { c.Auth.Keys = []string{"k1", ""} }, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) { c.RateLimit.RateLimitPerMinute = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
