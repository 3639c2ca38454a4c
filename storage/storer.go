// Package storage provides the durable side of the cache-aside layer:
// the Storer contract, concrete backends and the caching decorator.
package storage

import (
	"context"

	"github.com/shroudlabs/go-shroud-data/data"
)

// Storer reads and writes Data records against a durable backend.
// Paths are normalized before lookup, so callers may pass any spelling of a path.
// Implementations must be safe for concurrent use from multiple callers and must
// translate their native errors into ErrNotFound or ErrInternal.
type Storer interface {
	// Get fetches the record at the normalized path.
	// Returns ErrNotFound when no record exists there.
	Get(ctx context.Context, path string) (data.Data, error)

	// GetCollection returns up to pageSize records at or under the prefix,
	// after skipping skip records. Nothing matching is an empty collection,
	// not an error.
	GetCollection(ctx context.Context, pathPrefix string, skip, pageSize int64) (data.DataCollection, error)

	// Create upserts by path: creating at an existing path overwrites it.
	// Returns true on success.
	Create(ctx context.Context, d data.Data) (bool, error)
}
