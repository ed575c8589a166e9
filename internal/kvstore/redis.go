package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"legalease/internal/retry"
)

// Key prefix so one Redis instance can back several profiles.
const redisKeyPrefix = "legalease:"

type RedisStore struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store and verifies connectivity, retrying
// the initial ping with exponential backoff.
func NewRedis(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	const attempts = 3
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &RedisStore{client: client}, nil
		}
		if attempt < attempts-1 {
			time.Sleep(retry.ExponentialBackoff(attempt, 200*time.Millisecond))
		}
	}
	return nil, fmt.Errorf("redis connection failed: %w", lastErr)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	// No TTL: entries live until explicitly removed.
	return s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
