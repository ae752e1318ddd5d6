package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Guarded puts a Breaker in front of another Cache. A miss counts as success.
type Guarded struct {
	next Cache
	brk  *Breaker
}

func NewGuarded(next Cache, brk *Breaker) *Guarded {
	return &Guarded{next: next, brk: brk}
}

func (g *Guarded) allow() error {
	if err := g.brk.Allow(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (g *Guarded) record(err error) {
	if err == nil || errors.Is(err, ErrMiss) {
		g.brk.Success()
		return
	}
	g.brk.Failure()
}

func (g *Guarded) Get(ctx context.Context, key string) ([]byte, error) {
	if err := g.allow(); err != nil {
		return nil, err
	}
	v, err := g.next.Get(ctx, key)
	g.record(err)
	return v, err
}

func (g *Guarded) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := g.allow(); err != nil {
		return err
	}
	err := g.next.Set(ctx, key, value, ttl)
	g.record(err)
	return err
}

func (g *Guarded) HGet(ctx context.Context, key, field string) ([]byte, error) {
	if err := g.allow(); err != nil {
		return nil, err
	}
	v, err := g.next.HGet(ctx, key, field)
	g.record(err)
	return v, err
}

func (g *Guarded) HSetEx(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	if err := g.allow(); err != nil {
		return err
	}
	err := g.next.HSetEx(ctx, key, field, value, ttl)
	g.record(err)
	return err
}

// Del bypasses the breaker so invalidations are always attempted.
func (g *Guarded) Del(ctx context.Context, keys ...string) error {
	err := g.next.Del(ctx, keys...)
	g.record(err)
	return err
}
