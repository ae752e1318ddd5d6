package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	value     []byte
	fields    map[string][]byte
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is a single-process driver for local runs. It keeps redis
// semantics: per-key TTL, hash fields sharing the key's TTL, atomic HSetEx.
type MemoryCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, *memoryEntry]
	now func() time.Time
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	c, err := lru.New[string, *memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c, now: time.Now}, nil
}

// live returns the entry for key, dropping it if it has expired. Caller holds mu.
func (c *MemoryCache) live(key string) (*memoryEntry, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		c.lru.Remove(key)
		return nil, false
	}
	return e, true
}

func (c *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok || e.value == nil {
		return nil, ErrMiss
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, &memoryEntry{value: value, expiresAt: c.expiry(ttl)})
	return nil
}

func (c *MemoryCache) HGet(_ context.Context, key, field string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok || e.fields == nil {
		return nil, ErrMiss
	}
	v, ok := e.fields[field]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (c *MemoryCache) HSetEx(_ context.Context, key, field string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok || e.fields == nil {
		e = &memoryEntry{fields: make(map[string][]byte)}
	}
	e.fields[field] = value
	e.expiresAt = c.expiry(ttl)
	c.lru.Add(key, e)
	return nil
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}
