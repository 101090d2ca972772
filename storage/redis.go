package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dashboard"

// Redis is a KV backed by a Redis server. Keys are laid out as
// "dashboard:<namespace>:<key>".
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ KV = (*Redis)(nil)

// OpenRedis creates a new Redis client and pings it to validate the connection.
func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: c}, nil
}

// SetTTL makes every later Set expire after d. Zero keeps entries forever.
func (r *Redis) SetTTL(d time.Duration) {
	r.ttl = d
}

func redisKey(namespace, key string) string {
	return redisKeyPrefix + ":" + namespace + ":" + key
}

func (r *Redis) Get(ctx context.Context, namespace, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, redisKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", namespace, key, err)
	}

	if err := r.client.Set(ctx, redisKey(namespace, key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, namespace, key string) error {
	if err := r.client.Del(ctx, redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("remove %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
