package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shroudlabs/go-shroud-data/cache"
)

// HealthCheck probes the storer and the cacher concurrently.
// Either collaborator may be nil and is then skipped.
type HealthCheck struct {
	storer Storer
	cacher cache.DataCacher
}

// NewHealthCheck creates a health check over the given collaborators
func NewHealthCheck(storer Storer, cacher cache.DataCacher) *HealthCheck {
	return &HealthCheck{storer: storer, cacher: cacher}
}

// Name returns the check name
func (h *HealthCheck) Name() string {
	return ModuleName
}

// Check returns nil when every configured collaborator answers
func (h *HealthCheck) Check(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if h.storer != nil {
		g.Go(func() error {
			// a one-record page at the root proves the backend answers
			_, err := h.storer.GetCollection(ctx, ".", 0, 1)
			return err
		})
	}
	if h.cacher != nil {
		g.Go(func() error {
			_, err := h.cacher.Exists(ctx, "__storage_health__")
			return err
		})
	}
	return g.Wait()
}
