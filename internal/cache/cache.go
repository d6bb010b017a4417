// Package cache wraps the Redis key/value store behind a small interface so
// usecases can be tested against an in-memory fake.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tearoma/tearoma-api/internal/metrics"
)

// ErrCacheMiss indicates the requested key was not found.
var ErrCacheMiss = errors.New("cache miss")

// Store is the subset of Redis the application uses. Every operation is a
// single-key atomic primitive; GetDel in particular is the atomic
// delete-and-return used to consume reset-token flags exactly once.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	GetDel(ctx context.Context, key string) (string, error)
	SAdd(ctx context.Context, key string, member string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{client: client}
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Ping satisfies health.Pinger.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMisses.Inc()
			return "", ErrCacheMiss
		}
		metrics.CacheErrors.WithLabelValues("get").Inc()
		return "", fmt.Errorf("redis get: %w", err)
	}
	metrics.CacheHits.Inc()
	return val, nil
}

func (s *RedisStore) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) GetDel(ctx context.Context, key string) (string, error) {
	val, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		metrics.CacheErrors.WithLabelValues("getdel").Inc()
		return "", fmt.Errorf("redis getdel: %w", err)
	}
	return val, nil
}

func (s *RedisStore) SAdd(ctx context.Context, key string, member string) error {
	// No TTL: set membership (viewed products) persists until explicitly
	// cleared, unlike derived caches.
	if err := s.client.SAdd(ctx, key, member).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues("sadd").Inc()
		return fmt.Errorf("redis sadd: %w", err)
	}
	return nil
}

func (s *RedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		metrics.CacheErrors.WithLabelValues("smembers").Inc()
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	return members, nil
}
