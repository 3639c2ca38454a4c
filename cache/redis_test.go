package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/data"
)

func newTestRedisCacher(t *testing.T) (*RedisDataCacher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisDataCacher(client, "test:", time.Minute, nil), mr
}

func TestRedisDataCacher_SetGet(t *testing.T) {
	cacher, _ := newTestRedisCacher(t)
	ctx := context.Background()

	d := data.New("my.path", []data.DataValue{data.U64Value(42)}, nil)
	require.NoError(t, cacher.Set(ctx, ".my.path.", d, time.Minute))

	got, err := cacher.Get(ctx, ".my.path.")
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestRedisDataCacher_SetGet_Encrypted(t *testing.T) {
	cacher, _ := newTestRedisCacher(t)
	ctx := context.Background()

	d := data.New("vault.ssn", []data.DataValue{
		data.EncryptedValue([]byte{0x01, 0xFF}, data.TypeString, "k1"),
	}, []string{"k1"})
	require.NoError(t, cacher.Set(ctx, ".vault.ssn.", d, time.Minute))

	got, err := cacher.Get(ctx, ".vault.ssn.")
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestRedisDataCacher_GetMiss(t *testing.T) {
	cacher, _ := newTestRedisCacher(t)

	_, err := cacher.Get(context.Background(), ".absent.")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.True(t, IsCacheError(err))
}

func TestRedisDataCacher_Exists(t *testing.T) {
	cacher, _ := newTestRedisCacher(t)
	ctx := context.Background()

	exists, err := cacher.Exists(ctx, ".a.")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Minute))

	exists, err = cacher.Exists(ctx, ".a.")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisDataCacher_Expire(t *testing.T) {
	cacher, mr := newTestRedisCacher(t)
	ctx := context.Background()

	ok, err := cacher.Expire(ctx, ".absent.", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Second))

	ok, err = cacher.Expire(ctx, ".a.", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	// entry must survive past the original TTL after the refresh
	mr.FastForward(2 * time.Second)
	exists, err := cacher.Exists(ctx, ".a.")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisDataCacher_EntryExpires(t *testing.T) {
	cacher, mr := newTestRedisCacher(t)
	ctx := context.Background()

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := cacher.Get(ctx, ".a.")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisDataCacher_KeyPrefix(t *testing.T) {
	cacher, mr := newTestRedisCacher(t)

	require.NoError(t, cacher.Set(context.Background(), ".a.", data.New("a", nil, nil), time.Minute))
	assert.True(t, mr.Exists("test:.a."))
}

func TestRedisDataCacher_DefaultExpiration(t *testing.T) {
	cacher, mr := newTestRedisCacher(t)
	ctx := context.Background()

	assert.Equal(t, time.Minute, cacher.DefaultExpiration())

	// non-positive ttl falls back to the default
	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), 0))
	ttl := mr.TTL("test:.a.")
	assert.Equal(t, time.Minute, ttl)
}

func TestRedisDataCacher_BackendDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cacher := NewRedisDataCacher(client, "", time.Minute, nil)

	mr.Close()

	_, err := cacher.Get(context.Background(), ".a.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.True(t, IsCacheError(err))
}

func TestRedisStringCacher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cacher := NewRedisStringCacher(client, "s:", 30*time.Second)
	ctx := context.Background()

	_, err := cacher.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cacher.Set(ctx, "k", "v", time.Minute))

	v, err := cacher.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	exists, err := cacher.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	ok, err := cacher.Expire(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 30*time.Second, cacher.DefaultExpiration())
}
