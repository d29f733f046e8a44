package cache

import (
	"context"
	"sync"
	"time"

	"github.com/LuckyFay12/shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverCache serves from Redis while it is healthy and degrades to the
// in-memory cache when it is not. Health is re-probed at most once per
// checkInterval so a dead Redis does not add latency to every read.
type FailoverCache struct {
	primary       *RedisCache
	fallback      domain.ViewCache
	logger        *zerolog.Logger
	checkInterval time.Duration

	mu        sync.Mutex
	lastCheck time.Time
	redisDown bool
}

func NewFailoverCache(primary *RedisCache, fallback domain.ViewCache, checkInterval time.Duration, logger *zerolog.Logger) *FailoverCache {
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}
	return &FailoverCache{
		primary:       primary,
		fallback:      fallback,
		logger:        logger,
		checkInterval: checkInterval,
	}
}

func (c *FailoverCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return c.active(ctx).Get(ctx, key)
}

func (c *FailoverCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.active(ctx).Set(ctx, key, value, ttl)
}

func (c *FailoverCache) Delete(ctx context.Context, keys ...string) {
	// Invalidation must reach both layers: a write while Redis was down
	// otherwise leaves a stale entry behind in memory.
	c.primary.Delete(ctx, keys...)
	c.fallback.Delete(ctx, keys...)
}

func (c *FailoverCache) active(ctx context.Context) domain.ViewCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastCheck) >= c.checkInterval {
		c.lastCheck = time.Now()
		down := c.primary.Ping(ctx) != nil
		if down != c.redisDown {
			if down {
				c.logger.Warn().Msg("redis unavailable, falling back to memory cache")
			} else {
				c.logger.Info().Msg("redis recovered")
			}
		}
		c.redisDown = down
	}
	if c.redisDown {
		return c.fallback
	}
	return c.primary
}
