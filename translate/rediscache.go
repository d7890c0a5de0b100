package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed chunk cache. Defaults can be
// loaded via envdecode.
type RedisConfig struct {
	// Addr like "localhost:6379". ENV: REDIS_ADDR
	Addr string `env:"REDIS_ADDR,default=localhost:6379"`
	// KeyPrefix for all cache keys. ENV: TRANSLATE_KEY_PREFIX
	KeyPrefix string `env:"TRANSLATE_KEY_PREFIX,default=toon:translate:"`
	// TTL for cached translations. ENV: TRANSLATE_CACHE_TTL
	TTL time.Duration `env:"TRANSLATE_CACHE_TTL,default=24h"`
}

// RedisCache is a shared chunk cache for fleets that translate the
// same documents repeatedly.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCache connects and pings the backend.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	cl := redis.NewClient(&redis.Options{Addr: addr})
	if err := cl.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("translate: redis ping: %w", err)
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "toon:translate:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{client: cl, keyPrefix: prefix, ttl: ttl}, nil
}

// NewRedisCacheFromEnv builds a RedisCache using envdecode to populate
// RedisConfig.
func NewRedisCacheFromEnv() (*RedisCache, error) {
	var cfg RedisConfig
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("translate: redis config: %w", err)
	}
	return NewRedisCache(cfg)
}

// Close closes the Redis client.
func (c *RedisCache) Close() error { return c.client.Close() }

// Get looks up a chunk translation.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores a chunk translation with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err()
}
