package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is the Redis implementation of the cart's key-value contract.
// Session carts expire after TTL of inactivity.
type KV struct {
	Client *redis.Client
	TTL    time.Duration
}

func (k KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := k.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k KV) Set(ctx context.Context, key, val string) error {
	ttl := k.TTL
	if ttl <= 0 {
		ttl = TTLCart
	}
	return k.Client.Set(ctx, key, val, ttl).Err()
}

func (k KV) Del(ctx context.Context, key string) error {
	return k.Client.Del(ctx, key).Err()
}
