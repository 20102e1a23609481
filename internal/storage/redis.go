package storage

import (
	"context"
	"errors"
	"fmt"

	"talent-horizon/internal/clients"
)

const redisKeyPrefix = "state:"

// Redis stores values as plain redis strings without expiry.
type Redis struct {
	client *clients.RedisClient
}

func NewRedis(client *clients.RedisClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key)
	if errors.Is(err, clients.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis storage load %q: %w", key, err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0); err != nil {
		return fmt.Errorf("redis storage save %q: %w", key, err)
	}
	return nil
}
