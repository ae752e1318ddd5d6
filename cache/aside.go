package cache

import (
	"context"
	"errors"
	"time"

	"roomrent/services/logger"
)

// Entry addresses one cached value: a plain key, or a field of a hash key.
type Entry struct {
	Key   string
	Field string
	TTL   time.Duration
}

func (e Entry) String() string {
	if e.Field == "" {
		return e.Key
	}
	return e.Key + "#" + e.Field
}

// Loader recomputes a value on miss. Returning store=false skips the write-back.
type Loader func(ctx context.Context) (value []byte, store bool, err error)

// Aside is the only way read paths touch the cache. It returns the cached value
// on hit. On miss, or on any cache failure, it calls load; loader errors are
// returned as is. Cache failures are logged and never returned, and the
// write-back is best effort. hit reports where the value came from.
func Aside(ctx context.Context, c Cache, log logger.Logger, e Entry, load Loader) (value []byte, hit bool, err error) {
	if c != nil {
		v, err := read(ctx, c, e)
		switch {
		case err == nil && len(v) > 0:
			log.Debug("cache hit %s", e)
			return v, true, nil
		case err != nil && !errors.Is(err, ErrMiss):
			log.Error("cache read %s: %v", e, err)
		}
	}

	v, store, err := load(ctx)
	if err != nil {
		return nil, false, err
	}

	if c != nil && store && len(v) > 0 {
		if err := write(ctx, c, e, v); err != nil {
			log.Error("cache write %s: %v", e, err)
		}
	}
	return v, false, nil
}

// Invalidate deletes keys, logging instead of failing.
func Invalidate(ctx context.Context, c Cache, log logger.Logger, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Del(ctx, keys...); err != nil {
		log.Error("cache invalidate %v: %v", keys, err)
	}
}

func read(ctx context.Context, c Cache, e Entry) ([]byte, error) {
	if e.Field != "" {
		return c.HGet(ctx, e.Key, e.Field)
	}
	return c.Get(ctx, e.Key)
}

func write(ctx context.Context, c Cache, e Entry, v []byte) error {
	if e.Field != "" {
		return c.HSetEx(ctx, e.Key, e.Field, v, e.TTL)
	}
	return c.Set(ctx, e.Key, v, e.TTL)
}
