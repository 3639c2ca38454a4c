package redis

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Connection modes
const (
	ModeStandalone = "standalone"
	ModeCluster    = "cluster"
)

// Config redis instance configuration
type Config struct {
	// Mode: standalone or cluster
	Mode string `mapstructure:"mode"`

	// Addrs address list
	// Standalone mode uses the first address, cluster mode uses all
	Addrs []string `mapstructure:"addrs"`

	// Addr single address (kept for terse configs, folded into Addrs)
	Addr string `mapstructure:"addr"`

	// Password (optional)
	Password string `mapstructure:"password"`

	// DB database number (standalone mode only)
	DB int `mapstructure:"db"`

	// PoolSize connection pool size
	PoolSize int `mapstructure:"pool_size"`

	// MinIdleConns minimum idle connections
	MinIdleConns int `mapstructure:"min_idle_conns"`

	// MaxRetries maximum command retries
	MaxRetries int `mapstructure:"max_retries"`

	// DialTimeout connection timeout
	DialTimeout time.Duration `mapstructure:"dial_timeout"`

	// ReadTimeout read timeout
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout write timeout
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(ModeStandalone, ModeCluster)),
		validation.Field(&c.Addrs, validation.Required, validation.Length(1, 0)),
		validation.Field(&c.DB, validation.Min(0), validation.Max(15)),
		validation.Field(&c.PoolSize, validation.Min(0)),
		validation.Field(&c.MinIdleConns, validation.Min(0)),
	)
}

// ApplyDefaults applies default values
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeStandalone
	}
	if c.Addr != "" && len(c.Addrs) == 0 {
		c.Addrs = []string{c.Addr}
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 5
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
}
