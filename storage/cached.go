package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/data"
	"github.com/shroudlabs/go-shroud-data/logger"
)

// CachedDataStorer composes a Storer and a DataCacher into a Storer-shaped
// facade implementing cache-aside. Reads trust a confirmed cache hit and slide
// its expiration; writes go to the store first, then through to the cache.
//
// Both collaborators are owned elsewhere; this type only holds references and
// performs no in-process locking, relying on key-level atomicity of the store's
// upsert and the cache's set/expire. Two concurrent creates to one path may
// interleave their store and cache halves, leaving the cache with either
// writer's value until the next miss re-synchronizes it. That stale window is
// an accepted tradeoff, not reconciled here.
type CachedDataStorer struct {
	storer Storer
	cacher cache.DataCacher
	log    *logger.CtxZapLogger
}

// NewCachedDataStorer creates the cache-aside decorator around an
// already-constructed storer and cacher
func NewCachedDataStorer(storer Storer, cacher cache.DataCacher) *CachedDataStorer {
	return &CachedDataStorer{
		storer: storer,
		cacher: cacher,
		log:    logger.GetLogger(ModuleName),
	}
}

// Get fetches the record at the path, serving from the cache when present.
//
// A confirmed hit is authoritative: its TTL is refreshed to the cacher's
// default and the cached value is returned without consulting the store. Any
// cache failure after the hit is surfaced as-is; there is no fallback read.
// On a miss the store is read once and the result written to the cache before
// returning, so a cache write failure fails the whole read.
func (s *CachedDataStorer) Get(ctx context.Context, path string) (data.Data, error) {
	key := data.NormalizePath(path)

	exists, err := s.cacher.Exists(ctx, key)
	if err != nil {
		return data.Data{}, err
	}

	if exists {
		// sliding expiration: every read extends freshness
		if _, err := s.cacher.Expire(ctx, key, s.cacher.DefaultExpiration()); err != nil {
			return data.Data{}, err
		}
		d, err := s.cacher.Get(ctx, key)
		if err != nil {
			return data.Data{}, err
		}
		s.log.DebugCtx(ctx, "cache hit", zap.String("path", key))
		return d, nil
	}

	d, err := s.storer.Get(ctx, key)
	if err != nil {
		// NotFound is a normal outcome, never logged as an error
		return data.Data{}, err
	}

	if err := s.cacher.Set(ctx, key, d, s.cacher.DefaultExpiration()); err != nil {
		return data.Data{}, err
	}
	s.log.DebugCtx(ctx, "cache miss filled", zap.String("path", key))
	return d, nil
}

// GetCollection delegates paged prefix reads to the backing store.
// Collections are not cached.
func (s *CachedDataStorer) GetCollection(ctx context.Context, pathPrefix string, skip, pageSize int64) (data.DataCollection, error) {
	return s.storer.GetCollection(ctx, pathPrefix, skip, pageSize)
}

// Create upserts through the store first and only then writes the identical
// value to the cache. A store failure leaves the cache untouched. A cache
// failure after a committed store write is still surfaced: the record is
// safely persisted and only the cache layer is uncertain, which Origin lets
// callers distinguish.
func (s *CachedDataStorer) Create(ctx context.Context, d data.Data) (bool, error) {
	ok, err := s.storer.Create(ctx, d)
	if err != nil {
		return false, err
	}

	if err := s.cacher.Set(ctx, d.Path(), d, s.cacher.DefaultExpiration()); err != nil {
		return ok, err
	}
	return ok, nil
}
