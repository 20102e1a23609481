package clients

import (
	"context"
	"errors"
	"time"

	"talent-horizon/pkg/cache/redis"
)

// ErrCacheMiss is returned by RedisClient.Get when the key does not exist.
var ErrCacheMiss = errors.New("redis: key not found")

const defaultRedisPrefix = "talent_horizon_"

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration

	Prefix string
}

type RedisClient struct {
	raw    *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*RedisClient, error) {
	rdb, err := redis.NewRedisConnection(ctx, redis.ConnectionInfo{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: cfg.DialTimeout,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &RedisClient{
		raw:    rdb,
		prefix: prefix,
	}, nil
}

func (c *RedisClient) Close() {
	if c == nil || c.raw == nil {
		return
	}
	redis.Close(c.raw)
}

func (c *RedisClient) withPrefix(key string) string {
	return c.prefix + key
}

func (c *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.raw.Set(ctx, c.withPrefix(key), value, ttl).Err()
}

func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.raw.Get(ctx, c.withPrefix(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisClient) SAdd(ctx context.Context, key string, members ...any) error {
	return c.raw.SAdd(ctx, c.withPrefix(key), members...).Err()
}

func (c *RedisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.raw.SMembers(ctx, c.withPrefix(key)).Result()
}

func (c *RedisClient) SRem(ctx context.Context, key string, members ...any) error {
	return c.raw.SRem(ctx, c.withPrefix(key), members...).Err()
}
