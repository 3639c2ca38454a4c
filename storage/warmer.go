package storage

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/data"
	"github.com/shroudlabs/go-shroud-data/logger"
)

// CacheWarmer pages through a Storer prefix and pre-populates a cacher,
// fanning the cache writes out over a goroutine pool
type CacheWarmer struct {
	storer   Storer
	cacher   cache.DataCacher
	workers  int
	pageSize int64
	log      *logger.CtxZapLogger
}

// NewCacheWarmer creates a warmer; non-positive workers or pageSize fall back
// to 8 workers and pages of 100
func NewCacheWarmer(storer Storer, cacher cache.DataCacher, workers int, pageSize int64) *CacheWarmer {
	if workers <= 0 {
		workers = 8
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CacheWarmer{
		storer:   storer,
		cacher:   cacher,
		workers:  workers,
		pageSize: pageSize,
		log:      logger.GetLogger(ModuleName),
	}
}

// Warm loads every record at or under the prefix into the cache and returns
// how many were written. Individual cache write failures are counted and the
// first one is returned after the sweep completes; a page read failure aborts
// the sweep immediately.
func (w *CacheWarmer) Warm(ctx context.Context, pathPrefix string) (int, error) {
	pool, err := ants.NewPool(w.workers)
	if err != nil {
		return 0, ErrInternal.Wrap(err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		warmed   int
		failed   int
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		warmed++
	}

	prefix := data.NormalizePath(pathPrefix)
	var skip int64
	for {
		coll, err := w.storer.GetCollection(ctx, prefix, skip, w.pageSize)
		if err != nil {
			wg.Wait()
			return warmed, err
		}
		if len(coll.Data) == 0 {
			break
		}

		for _, d := range coll.Data {
			d := d
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				record(w.cacher.Set(ctx, d.Path(), d, w.cacher.DefaultExpiration()))
			}); err != nil {
				wg.Done()
				record(ErrInternal.Wrap(err))
			}
		}

		if int64(len(coll.Data)) < w.pageSize {
			break
		}
		skip += w.pageSize
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	w.log.InfoCtx(ctx, "cache warm sweep finished",
		zap.String("prefix", prefix),
		zap.Int("warmed", warmed),
		zap.Int("failed", failed),
	)
	return warmed, firstErr
}
