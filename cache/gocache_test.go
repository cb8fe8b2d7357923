package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoCache_Basic(t *testing.T) {
	cache := NewGoCacheDataSource[string, testItem](5*time.Minute, 10*time.Minute, testItemKey)
	ctx := context.Background()

	require.NoError(t, cache.AddOrUpdate(ctx, testItem{ID: "key2", Value: "value2"}))
	require.NoError(t, cache.AddOrUpdate(ctx, testItem{ID: "key1", Value: "value1"}))

	value, found, err := cache.GetByKey(ctx, "key1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value1", value.Value)

	_, found, err = cache.GetByKey(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)

	all, err := cache.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []testItem{{ID: "key1", Value: "value1"}, {ID: "key2", Value: "value2"}}, all)

	assert.Equal(t, 2, cache.ItemCount())
	assert.True(t, cache.IsValid("key2"))
	assert.Equal(t, "go-cache", cache.Name())
}

func TestGoCache_Delete(t *testing.T) {
	cache := NewGoCacheDataSource[string, testItem](5*time.Minute, 10*time.Minute, testItemKey)
	ctx := context.Background()

	for _, id := range []string{"key1", "key2", "key3"} {
		require.NoError(t, cache.AddOrUpdate(ctx, testItem{ID: id}))
	}

	require.NoError(t, cache.DeleteByKey(ctx, "key1"))
	assert.Equal(t, 2, cache.ItemCount())
	assert.False(t, cache.IsValid("key1"))

	require.NoError(t, cache.DeleteAll(ctx))
	assert.Equal(t, 0, cache.ItemCount())
}

func TestGoCache_Expiration(t *testing.T) {
	cache := NewGoCacheDataSource[string, testItem](100*time.Millisecond, 10*time.Minute, testItemKey)
	ctx := context.Background()

	require.NoError(t, cache.AddOrUpdate(ctx, testItem{ID: "short", Value: "expires soon"}))
	assert.True(t, cache.IsValid("short"))

	time.Sleep(150 * time.Millisecond)

	_, found, err := cache.GetByKey(ctx, "short")
	assert.NoError(t, err)
	assert.False(t, found)

	all, err := cache.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)

	// Force cleanup of expired items
	assert.Equal(t, 1, cache.EvictExpired())
	assert.Equal(t, 0, cache.ItemCount())
}

func TestGoCache_NonStringKeys(t *testing.T) {
	type numbered struct {
		N    int
		Name string
	}
	cache := NewGoCacheDataSource[int, numbered](time.Minute, time.Minute, func(n numbered) int { return n.N })
	ctx := context.Background()

	require.NoError(t, cache.AddOrUpdate(ctx, numbered{N: 42, Name: "answer"}))

	value, found, err := cache.GetByKey(ctx, 42)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "answer", value.Name)
}

type pairKey struct {
	A, B string
}

type pairItem struct {
	K pairKey
	N int
}

func pairItemKey(p pairItem) pairKey { return p.K }

func TestGoCache_StructKeysDoNotCollide(t *testing.T) {
	cache := NewGoCacheDataSource[pairKey, pairItem](time.Minute, time.Minute, pairItemKey)
	ctx := context.Background()

	require.NoError(t, cache.AddOrUpdate(ctx, pairItem{K: pairKey{"a b", "c"}, N: 1}))

	_, found, err := cache.GetByKey(ctx, pairKey{"a", "b c"})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.False(t, cache.IsValid(pairKey{"a", "b c"}))

	require.NoError(t, cache.AddOrUpdate(ctx, pairItem{K: pairKey{"a", "b c"}, N: 2}))
	value, found, err := cache.GetByKey(ctx, pairKey{"a b", "c"})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, value.N)

	all, err := cache.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
