package config

import (
	"fmt"
	"log"
	"os"

	"github.com/haikuowuya/Rosie/cache"
	"github.com/haikuowuya/Rosie/remote"
	"github.com/haikuowuya/Rosie/warmer"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Cache      cache.Config     `yaml:"cache"`
	Remote     remote.Config    `yaml:"remote"`
	Repository RepositoryConfig `yaml:"repository"`
	Warmer     warmer.Config    `yaml:"warmer"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port             string `yaml:"port"`
	DefaultPageLimit int    `yaml:"default_page_limit"`
	MaxPageLimit     int    `yaml:"max_page_limit"`
}

// RepositoryConfig configures the record repository
type RepositoryConfig struct {
	Name           string `yaml:"name"`
	ReadCoalescing bool   `yaml:"read_coalescing"`
}

// Default returns the configuration used for every field a file leaves out
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:             "8080",
			DefaultPageLimit: 20,
			MaxPageLimit:     100,
		},
		Cache:  cache.DefaultCacheConfig(),
		Remote: remote.DefaultConfig(),
		Repository: RepositoryConfig{
			Name: "records",
		},
		Warmer: warmer.DefaultConfig(),
	}
}

// LoadConfig reads the yaml file at path on top of the defaults. The PORT
// environment variable overrides the configured server port.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		log.Printf("Config: using port %s from environment", port)
		config.Server.Port = port
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	if c.Server.DefaultPageLimit <= 0 || c.Server.MaxPageLimit < c.Server.DefaultPageLimit {
		return fmt.Errorf("server page limits must satisfy 0 < default_page_limit <= max_page_limit, got %d and %d",
			c.Server.DefaultPageLimit, c.Server.MaxPageLimit)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Remote.Validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	if err := c.Warmer.Validate(); err != nil {
		return fmt.Errorf("warmer: %w", err)
	}
	if c.Warmer.Enabled && !c.Remote.Enabled {
		return fmt.Errorf("warmer: requires an enabled remote source")
	}
	return nil
}
