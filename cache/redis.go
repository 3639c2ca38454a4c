package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shroudlabs/go-shroud-data/data"
)

// RedisDataCacher Data cacher backed by a redis instance
// The client is owned by the redis manager; this type never closes it
type RedisDataCacher struct {
	client     redis.UniversalClient
	keyPrefix  string
	defaultTTL time.Duration
	serializer Serializer
}

// NewRedisDataCacher creates a redis-backed Data cacher
// A nil serializer falls back to JSON
func NewRedisDataCacher(client redis.UniversalClient, keyPrefix string, defaultTTL time.Duration, serializer Serializer) *RedisDataCacher {
	if serializer == nil {
		serializer = NewJSONSerializer()
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisDataCacher{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
		serializer: serializer,
	}
}

// buildKey builds the full redis key
func (c *RedisDataCacher) buildKey(key string) string {
	if c.keyPrefix == "" {
		return key
	}
	return c.keyPrefix + key
}

// Set stores a value, overwriting any existing entry
func (c *RedisDataCacher) Set(ctx context.Context, key string, d data.Data, ttl time.Duration) error {
	b, err := c.serializer.Serialize(d)
	if err != nil {
		return ErrSerialize.Wrap(err)
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.buildKey(key), b, ttl).Err(); err != nil {
		return ErrInternal.Wrap(err)
	}
	return nil
}

// Get retrieves a cached value
func (c *RedisDataCacher) Get(ctx context.Context, key string) (data.Data, error) {
	b, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return data.Data{}, ErrCacheMiss
		}
		return data.Data{}, ErrInternal.Wrap(err)
	}

	var d data.Data
	if err := c.serializer.Deserialize(b, &d); err != nil {
		return data.Data{}, ErrDeserialize.Wrap(err)
	}
	return d, nil
}

// Exists reports whether an entry exists
func (c *RedisDataCacher) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.buildKey(key)).Result()
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	return n > 0, nil
}

// Expire resets the TTL on an existing entry
func (c *RedisDataCacher) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	ok, err := c.client.Expire(ctx, c.buildKey(key), ttl).Result()
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	return ok, nil
}

// DefaultExpiration returns the TTL applied when no explicit one is given
func (c *RedisDataCacher) DefaultExpiration() time.Duration {
	return c.defaultTTL
}

// RedisStringCacher string cacher backed by a redis instance
type RedisStringCacher struct {
	client     redis.UniversalClient
	keyPrefix  string
	defaultTTL time.Duration
}

// NewRedisStringCacher creates a redis-backed string cacher
func NewRedisStringCacher(client redis.UniversalClient, keyPrefix string, defaultTTL time.Duration) *RedisStringCacher {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisStringCacher{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (c *RedisStringCacher) buildKey(key string) string {
	if c.keyPrefix == "" {
		return key
	}
	return c.keyPrefix + key
}

// Set stores a value, overwriting any existing entry
func (c *RedisStringCacher) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.buildKey(key), value, ttl).Err(); err != nil {
		return ErrInternal.Wrap(err)
	}
	return nil
}

// Get retrieves a cached value
func (c *RedisStringCacher) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.buildKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", ErrInternal.Wrap(err)
	}
	return v, nil
}

// Exists reports whether an entry exists
func (c *RedisStringCacher) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.buildKey(key)).Result()
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	return n > 0, nil
}

// Expire resets the TTL on an existing entry
func (c *RedisStringCacher) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	ok, err := c.client.Expire(ctx, c.buildKey(key), ttl).Result()
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	return ok, nil
}

// DefaultExpiration returns the TTL applied when no explicit one is given
func (c *RedisStringCacher) DefaultExpiration() time.Duration {
	return c.defaultTTL
}
