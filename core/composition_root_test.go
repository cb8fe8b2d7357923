package core

import (
	"context"
	"testing"

	"github.com/haikuowuya/Rosie/api"
	"github.com/haikuowuya/Rosie/cache"
	"github.com/haikuowuya/Rosie/config"
	"github.com/haikuowuya/Rosie/warmer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_CacheOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "0"

	registry, err := Setup(context.Background(), &cfg)
	require.NoError(t, err)
	assert.Len(t, registry.services, 2)

	_, isCache := registry.services[0].(*cache.Service[string, api.Record])
	assert.True(t, isCache)
}

func TestSetup_WithRemoteAndSweep(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "0"
	cfg.Cache.Eviction.Mode = cache.EvictionSweep
	cfg.Cache.GoCache.Enabled = true
	cfg.Cache.Ristretto.Enabled = true
	cfg.Remote.Enabled = true
	cfg.Remote.BaseURL = "http://localhost:9000/records"
	cfg.Repository.ReadCoalescing = true

	registry, err := Setup(context.Background(), &cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, registry.StartAll(ctx))
	registry.StopAll()
}

func TestSetup_WithWarmer(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "0"
	cfg.Remote.Enabled = true
	cfg.Remote.BaseURL = "http://localhost:9000/records"
	cfg.Warmer.Enabled = true

	registry, err := Setup(context.Background(), &cfg)
	require.NoError(t, err)
	require.Len(t, registry.services, 3)

	_, isWarmer := registry.services[1].(*warmer.Warmer[api.Record])
	assert.True(t, isWarmer)
}

func TestSetup_InvalidCacheConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.TTL = 0

	_, err := Setup(context.Background(), &cfg)
	assert.Error(t, err)
}

func TestSetup_InvalidRemote(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.Enabled = true
	cfg.Remote.BaseURL = "::not-a-url"

	_, err := Setup(context.Background(), &cfg)
	assert.Error(t, err)
}
