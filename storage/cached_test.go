package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/data"
)

// fakeStorer in-memory Storer with call counters for protocol tests
type fakeStorer struct {
	mu          sync.Mutex
	records     map[string]data.Data
	getCalls    int
	collCalls   int
	createCalls int
	getErr      error
	createErr   error
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{records: map[string]data.Data{}}
}

func (s *fakeStorer) Get(ctx context.Context, path string) (data.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return data.Data{}, s.getErr
	}
	d, ok := s.records[data.NormalizePath(path)]
	if !ok {
		return data.Data{}, ErrNotFound
	}
	return d, nil
}

func (s *fakeStorer) GetCollection(ctx context.Context, pathPrefix string, skip, pageSize int64) (data.DataCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collCalls++
	if pageSize <= 0 {
		return data.DataCollection{}, nil
	}

	prefix := data.NormalizePath(pathPrefix)
	paths := make([]string, 0, len(s.records))
	for p := range s.records {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var coll data.DataCollection
	for i, p := range paths {
		if int64(i) < skip {
			continue
		}
		if int64(len(coll.Data)) >= pageSize {
			break
		}
		coll.Data = append(coll.Data, s.records[p])
	}
	return coll, nil
}

func (s *fakeStorer) Create(ctx context.Context, d data.Data) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return false, s.createErr
	}
	s.records[d.Path()] = d
	return true, nil
}

func (s *fakeStorer) put(d data.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[d.Path()] = d
}

// fakeCacher in-memory DataCacher with call counters and error injection
type fakeCacher struct {
	mu          sync.Mutex
	entries     map[string]data.Data
	setCalls    int
	getCalls    int
	existsCalls int
	expireCalls int
	lastSetTTL  time.Duration
	setErr      error
	getErr      error
	existsErr   error
	expireErr   error
}

func newFakeCacher() *fakeCacher {
	return &fakeCacher{entries: map[string]data.Data{}}
}

func (c *fakeCacher) Set(ctx context.Context, key string, d data.Data, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = d
	c.lastSetTTL = ttl
	return nil
}

func (c *fakeCacher) Get(ctx context.Context, key string) (data.Data, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	if c.getErr != nil {
		return data.Data{}, c.getErr
	}
	d, ok := c.entries[key]
	if !ok {
		return data.Data{}, cache.ErrCacheMiss
	}
	return d, nil
}

func (c *fakeCacher) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.existsCalls++
	if c.existsErr != nil {
		return false, c.existsErr
	}
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeCacher) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireCalls++
	if c.expireErr != nil {
		return false, c.expireErr
	}
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeCacher) DefaultExpiration() time.Duration {
	return time.Minute
}

func (c *fakeCacher) put(key string, d data.Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = d
}

func testData(path, value string) data.Data {
	return data.New(path, []data.DataValue{data.ParseValue(value)}, nil)
}

func TestCachedGet_HitExpiresOnceAndSkipsStore(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	d := testData("my.path", "hello")
	cacher.put(".my.path.", d)

	cached := NewCachedDataStorer(storer, cacher)
	got, err := cached.Get(context.Background(), "my.path")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	assert.Equal(t, 1, cacher.expireCalls)
	assert.Equal(t, 1, cacher.getCalls)
	assert.Equal(t, 0, cacher.setCalls)
	assert.Equal(t, 0, storer.getCalls)
}

func TestCachedGet_MissReadsStoreOnceAndFillsCache(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	d := testData("my.path", "42")
	storer.put(d)

	cached := NewCachedDataStorer(storer, cacher)
	got, err := cached.Get(context.Background(), "my.path")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	assert.Equal(t, 1, storer.getCalls)
	assert.Equal(t, 1, cacher.setCalls)
	assert.Equal(t, 0, cacher.expireCalls)
	assert.Equal(t, 0, cacher.getCalls)
	assert.Equal(t, cacher.DefaultExpiration(), cacher.lastSetTTL)

	// the fetched value landed under the normalized path
	assert.Equal(t, d, cacher.entries[".my.path."])
}

func TestCachedGet_StoreNotFoundPropagates(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()

	cached := NewCachedDataStorer(storer, cacher)
	_, err := cached.Get(context.Background(), "absent")
	require.Error(t, err)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, OriginStorage, Origin(err))
	assert.Equal(t, 0, cacher.setCalls)
}

func TestCachedGet_ExistsFailureIsCacheOrigin(t *testing.T) {
	storer := newFakeStorer()
	storer.put(testData("a", "1"))
	cacher := newFakeCacher()
	cacher.existsErr = cache.ErrInternal.Wrap(errors.New("connection reset"))

	cached := NewCachedDataStorer(storer, cacher)
	_, err := cached.Get(context.Background(), "a")
	require.Error(t, err)

	assert.Equal(t, OriginCache, Origin(err))
	// a hit is never double-checked against the store, and neither is a probe failure
	assert.Equal(t, 0, storer.getCalls)
}

func TestCachedGet_ExpireFailureSurfacesWithoutFallback(t *testing.T) {
	storer := newFakeStorer()
	storer.put(testData("a", "1"))
	cacher := newFakeCacher()
	cacher.put(".a.", testData("a", "1"))
	cacher.expireErr = cache.ErrInternal.Wrap(errors.New("connection reset"))

	cached := NewCachedDataStorer(storer, cacher)
	_, err := cached.Get(context.Background(), "a")
	require.Error(t, err)

	assert.Equal(t, OriginCache, Origin(err))
	assert.Equal(t, 0, storer.getCalls)
	assert.Equal(t, 0, cacher.getCalls)
}

func TestCachedGet_FillFailureSurfaces(t *testing.T) {
	storer := newFakeStorer()
	storer.put(testData("a", "1"))
	cacher := newFakeCacher()
	cacher.setErr = cache.ErrInternal.Wrap(errors.New("oom"))

	cached := NewCachedDataStorer(storer, cacher)
	_, err := cached.Get(context.Background(), "a")
	require.Error(t, err)

	assert.Equal(t, OriginCache, Origin(err))
	assert.Equal(t, 1, storer.getCalls)
}

func TestCachedCreate_StoreBeforeCache(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	d := testData("my.path", "true")

	cached := NewCachedDataStorer(storer, cacher)
	ok, err := cached.Create(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 1, storer.createCalls)
	assert.Equal(t, 1, cacher.setCalls)
	assert.Equal(t, d, storer.records[".my.path."])
	assert.Equal(t, d, cacher.entries[".my.path."])
}

func TestCachedCreate_StoreFailureLeavesCacheUntouched(t *testing.T) {
	storer := newFakeStorer()
	storer.createErr = ErrInternal.Wrap(errors.New("disk full"))
	cacher := newFakeCacher()

	cached := NewCachedDataStorer(storer, cacher)
	ok, err := cached.Create(context.Background(), testData("a", "1"))
	require.Error(t, err)
	assert.False(t, ok)

	assert.Equal(t, OriginStorage, Origin(err))
	assert.Equal(t, 0, cacher.setCalls)
}

func TestCachedCreate_CacheFailureAfterCommit(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	cacher.setErr = cache.ErrInternal.Wrap(errors.New("oom"))
	d := testData("a", "1")

	cached := NewCachedDataStorer(storer, cacher)
	ok, err := cached.Create(context.Background(), d)
	require.Error(t, err)

	// the durable write committed; only the cache layer is uncertain
	assert.True(t, ok)
	assert.Equal(t, OriginCache, Origin(err))
	assert.Equal(t, d, storer.records[".a."])
}

func TestCachedGetCollection_DelegatesUncached(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	storer.put(testData("users.1", "a"))
	storer.put(testData("users.2", "b"))

	cached := NewCachedDataStorer(storer, cacher)
	coll, err := cached.GetCollection(context.Background(), "users", 0, 10)
	require.NoError(t, err)

	assert.Len(t, coll.Data, 2)
	assert.Equal(t, 1, storer.collCalls)
	assert.Equal(t, 0, cacher.setCalls)
	assert.Equal(t, 0, cacher.existsCalls)
}

func TestCachedGet_TrustsStaleHit(t *testing.T) {
	storer := newFakeStorer()
	cacher := newFakeCacher()
	cached := NewCachedDataStorer(storer, cacher)
	ctx := context.Background()

	old := testData("a", "old")
	_, err := cached.Create(ctx, old)
	require.NoError(t, err)

	// a racing writer lands only in the store, leaving the cache stale
	storer.put(testData("a", "new"))

	// the confirmed hit is served verbatim; only a future create (or an
	// eviction followed by a miss) re-synchronizes the cache
	got, err := cached.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, old, got)
	assert.Equal(t, 0, storer.getCalls)
}

func TestOrigin_UnknownError(t *testing.T) {
	assert.Equal(t, "", Origin(errors.New("plain")))
	assert.Equal(t, "", Origin(nil))
}
