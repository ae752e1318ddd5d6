// Package cache holds the disposable projection of the store: a small key/value
// interface with a hash substructure, its redis and in-process drivers, and the
// cache-aside combinator every read path goes through.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMiss means the key or field is absent or expired.
	ErrMiss = errors.New("cache miss")
	// ErrUnavailable is returned without touching the backend while the breaker is open.
	ErrUnavailable = errors.New("cache unavailable")
)

// Cache is implemented by RedisCache, MemoryCache and Guarded.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	HGet(ctx context.Context, key, field string) ([]byte, error)
	// HSetEx writes one hash field and resets the key's TTL atomically:
	// readers see both or neither.
	HSetEx(ctx context.Context, key, field string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
