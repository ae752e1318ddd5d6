package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb, time.Second), mr
}

func TestRedisCache_GetSet(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "area_info")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "area_info", []byte(`[{"aid":1}]`), 2*time.Hour))
	v, err := c.Get(ctx, "area_info")
	require.NoError(t, err)
	assert.Equal(t, `[{"aid":1}]`, string(v))
	assert.Equal(t, 2*time.Hour, mr.TTL("area_info"))

	mr.FastForward(2 * time.Hour)
	_, err = c.Get(ctx, "area_info")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCache_HSetExSetsFieldAndTTL(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()
	key := HouseListKey("1", "", "", "new")

	_, err := c.HGet(ctx, key, "1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.HSetEx(ctx, key, "1", []byte("page-1"), 10*time.Minute))
	require.NoError(t, c.HSetEx(ctx, key, "2", []byte("page-2"), 10*time.Minute))

	assert.Equal(t, "page-1", mr.HGet(key, "1"))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	v, err := c.HGet(ctx, key, "2")
	require.NoError(t, err)
	assert.Equal(t, "page-2", string(v))

	_, err = c.HGet(ctx, key, "3")
	assert.ErrorIs(t, err, ErrMiss)

	mr.FastForward(10 * time.Minute)
	assert.False(t, mr.Exists(key))
}

func TestRedisCache_Del(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, HouseDetailKey(7), []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, HouseDetailKey(8), []byte("y"), time.Minute))
	require.NoError(t, c.Del(ctx, HouseDetailKey(7), HouseDetailKey(8)))
	require.NoError(t, c.Del(ctx))

	assert.False(t, mr.Exists("house_info_7"))
	assert.False(t, mr.Exists("house_info_8"))
}

func TestRedisCache_ServerDownReturnsError(t *testing.T) {
	c, mr := newTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "area_info")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
