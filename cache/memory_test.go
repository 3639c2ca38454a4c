package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/data"
)

func TestMemoryDataCacher_SetGet(t *testing.T) {
	cacher := NewMemoryDataCacher(100, time.Minute)
	defer cacher.Close()
	ctx := context.Background()

	d := data.New("my.path", []data.DataValue{data.StringValue("hello")}, nil)
	require.NoError(t, cacher.Set(ctx, ".my.path.", d, time.Minute))

	got, err := cacher.Get(ctx, ".my.path.")
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestMemoryDataCacher_GetMiss(t *testing.T) {
	cacher := NewMemoryDataCacher(100, time.Minute)
	defer cacher.Close()

	_, err := cacher.Get(context.Background(), ".absent.")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryDataCacher_EntryExpires(t *testing.T) {
	cacher := NewMemoryDataCacher(100, time.Minute)
	defer cacher.Close()
	ctx := context.Background()

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := cacher.Get(ctx, ".a.")
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := cacher.Exists(ctx, ".a.")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryDataCacher_Expire(t *testing.T) {
	cacher := NewMemoryDataCacher(100, time.Minute)
	defer cacher.Close()
	ctx := context.Background()

	ok, err := cacher.Expire(ctx, ".absent.", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), 10*time.Millisecond))

	ok, err = cacher.Expire(ctx, ".a.", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	exists, err := cacher.Exists(ctx, ".a.")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryDataCacher_EvictsAtCapacity(t *testing.T) {
	cacher := NewMemoryDataCacher(2, time.Minute)
	defer cacher.Close()
	ctx := context.Background()

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Minute))
	require.NoError(t, cacher.Set(ctx, ".b.", data.New("b", nil, nil), time.Minute))
	require.NoError(t, cacher.Set(ctx, ".c.", data.New("c", nil, nil), time.Minute))

	assert.Equal(t, 2, cacher.Size())
}

func TestMemoryDataCacher_OverwriteDoesNotEvict(t *testing.T) {
	cacher := NewMemoryDataCacher(2, time.Minute)
	defer cacher.Close()
	ctx := context.Background()

	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", nil, nil), time.Minute))
	require.NoError(t, cacher.Set(ctx, ".b.", data.New("b", nil, nil), time.Minute))
	require.NoError(t, cacher.Set(ctx, ".a.", data.New("a", []data.DataValue{data.U64Value(2)}, nil), time.Minute))

	got, err := cacher.Get(ctx, ".a.")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Values()[0].U64())

	_, err = cacher.Get(ctx, ".b.")
	assert.NoError(t, err)
}

func TestMemoryDataCacher_CloseIsIdempotent(t *testing.T) {
	cacher := NewMemoryDataCacher(10, time.Minute)
	cacher.Close()
	cacher.Close()
	assert.Equal(t, 0, cacher.Size())
}
