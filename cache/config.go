package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Store backend kinds
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config cache component configuration
type Config struct {
	// Enabled whether the cache component is active
	Enabled bool `mapstructure:"enabled"`

	// Store backend kind: memory or redis
	Store string `mapstructure:"store"`

	// Instance redis instance name (redis store only)
	Instance string `mapstructure:"instance"`

	// KeyPrefix prefix prepended to every cache key
	KeyPrefix string `mapstructure:"key_prefix"`

	// DefaultTTL expiration applied when callers do not pick one
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// MaxEntries entry cap for the memory store
	MaxEntries int `mapstructure:"max_entries"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Store, validation.Required, validation.In(StoreMemory, StoreRedis)),
		validation.Field(&c.Instance, validation.When(c.Store == StoreRedis, validation.Required)),
		validation.Field(&c.DefaultTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxEntries, validation.Min(0)),
	)
}

// ApplyDefaults applies default values
func (c *Config) ApplyDefaults() {
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.DefaultTTL <= 0 {
		c.DefaultTTL = 5 * time.Minute
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10000
	}
}
