package cache

import (
	"context"
	"sync"
	"time"
)

// stubCache wraps a MemoryCache and can be switched into failing mode.
type stubCache struct {
	mu    sync.Mutex
	inner *MemoryCache
	err   error
	calls map[string]int
}

func newStubCache() *stubCache {
	c, _ := NewMemoryCache(64)
	return &stubCache{inner: c, calls: map[string]int{}}
}

func (s *stubCache) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubCache) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubCache) enter(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.err
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.enter("Get"); err != nil {
		return nil, err
	}
	return s.inner.Get(ctx, key)
}

func (s *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.enter("Set"); err != nil {
		return err
	}
	return s.inner.Set(ctx, key, value, ttl)
}

func (s *stubCache) HGet(ctx context.Context, key, field string) ([]byte, error) {
	if err := s.enter("HGet"); err != nil {
		return nil, err
	}
	return s.inner.HGet(ctx, key, field)
}

func (s *stubCache) HSetEx(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	if err := s.enter("HSetEx"); err != nil {
		return err
	}
	return s.inner.HSetEx(ctx, key, field, value, ttl)
}

func (s *stubCache) Del(ctx context.Context, keys ...string) error {
	if err := s.enter("Del"); err != nil {
		return err
	}
	return s.inner.Del(ctx, keys...)
}
