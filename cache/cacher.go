// Package cache provides the fast ephemeral side of the cache-aside storage layer:
// typed cacher contracts plus redis and in-memory backends.
package cache

import (
	"context"
	"time"

	"github.com/shroudlabs/go-shroud-data/data"
)

// DataCacher caches Data records keyed by their normalized path.
// Implementations must be safe for concurrent use; set and expire must be atomic at
// the key level. A round trip through Set then Get must reproduce an equal Data.
type DataCacher interface {
	// Set stores a value with the given expiration, overwriting any existing entry.
	// A non-positive ttl falls back to DefaultExpiration.
	Set(ctx context.Context, key string, d data.Data, ttl time.Duration) error

	// Get retrieves a cached value.
	// Returns ErrCacheMiss when the entry is absent or expired.
	Get(ctx context.Context, key string) (data.Data, error)

	// Exists reports whether an entry exists; absence is never an error,
	// only transport failures are.
	Exists(ctx context.Context, key string) (bool, error)

	// Expire resets the TTL on an existing entry.
	// Returns false when the key is absent.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// DefaultExpiration is the TTL applied when a caller does not pick one
	// (used by the cache-aside decorator on read refresh)
	DefaultExpiration() time.Duration
}

// StringCacher is the companion string-valued cacher, sharing the DataCacher shape.
// It serves unrelated scalar caching needs next to the typed data cache.
type StringCacher interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	DefaultExpiration() time.Duration
}

// Serializer serialization interface for cacher wire representations
type Serializer interface {
	// Serialize object to byte array
	Serialize(v any) ([]byte, error)

	// Deserialize byte array to object
	Deserialize(b []byte, v any) error

	// Name returns the serializer name
	Name() string
}
