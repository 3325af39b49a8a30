package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "cart_token"

// RedisStore keeps the cart token in redis under a fixed key so it survives
// process restarts. No TTL: the token lives until the backend rotates it.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    defaultKey,
	}
}

func (r *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get token failed: %w", err)
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token failed: %w", err)
	}
	return nil
}
