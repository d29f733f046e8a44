package cache

import (
	"context"
	"testing"
	"time"

	"github.com/LuckyFay12/shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := zerolog.Nop()
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	return mr, NewRedisCache(client, &logger)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "key", []byte("value"), time.Minute)
	got, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	c.Delete(ctx, "key")
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	_, ok := c.Get(ctx, "short")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "short")
	assert.False(t, ok)

	// Zero TTL means no expiry
	c.Set(ctx, "forever", []byte("v"), 0)
	_, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestRedisCache(t *testing.T) {
	mr, c := setupRedisCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "key", []byte("value"), time.Minute)
	got, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	// TTL is honored by the backend
	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)

	c.Set(ctx, "key", []byte("value"), time.Minute)
	c.Delete(ctx, "key")
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)

	assert.NoError(t, c.Ping(ctx))
}

func TestFailoverCacheFallsBackToMemory(t *testing.T) {
	mr, primary := setupRedisCache(t)
	logger := zerolog.Nop()
	fallback := NewMemoryCache()
	c := NewFailoverCache(primary, fallback, time.Millisecond, &logger)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("redis"), time.Minute)
	got, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("redis"), got)

	// Kill Redis: after the next health probe, writes land in memory
	mr.Close()
	time.Sleep(5 * time.Millisecond)

	c.Set(ctx, "key2", []byte("memory"), time.Minute)
	got, ok = c.Get(ctx, "key2")
	require.True(t, ok)
	assert.Equal(t, []byte("memory"), got)

	_, ok = fallback.Get(ctx, "key2")
	assert.True(t, ok)
}

func TestFailoverCacheDeleteReachesBothLayers(t *testing.T) {
	_, primary := setupRedisCache(t)
	logger := zerolog.Nop()
	fallback := NewMemoryCache()
	c := NewFailoverCache(primary, fallback, time.Minute, &logger)
	ctx := context.Background()

	primary.Set(ctx, "key", []byte("a"), time.Minute)
	fallback.Set(ctx, "key", []byte("b"), time.Minute)

	c.Delete(ctx, "key")

	_, ok := primary.Get(ctx, "key")
	assert.False(t, ok)
	_, ok = fallback.Get(ctx, "key")
	assert.False(t, ok)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "item_view:42", ItemViewKey(42))
	assert.Equal(t, "search:drill", SearchKey("  DRILL "))
}
