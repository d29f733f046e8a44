package cache

import (
	"context"
	"time"

	"github.com/LuckyFay12/shareit/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache хранит сериализованные представления в Redis.
type RedisCache struct {
	client *redis.Client
	logger *zerolog.Logger
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisCache(client *redis.Client, logger *zerolog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache get error")
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache set error")
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug().Err(err).Strs("keys", keys).Msg("cache delete error")
	}
}

// Ping reports whether the Redis backend is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
