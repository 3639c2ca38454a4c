// Package database manages named gorm connections used by the storage layer
package database

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Supported drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config database instance configuration
type Config struct {
	// Driver: mysql, postgres or sqlite
	Driver string `mapstructure:"driver"`

	// DSN data source name
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns maximum open connections
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// MaxIdleConns maximum idle connections
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxLifetime maximum connection lifetime
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// EnableLog whether query logging is enabled
	EnableLog bool `mapstructure:"enable_log"`

	// SlowThreshold slow query threshold
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverMySQL, DriverPostgres, DriverSQLite)),
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.MaxOpenConns, validation.Min(0)),
		validation.Field(&c.MaxIdleConns, validation.Min(0)),
	)
}

// ApplyDefaults applies default values
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 100
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 10
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.SlowThreshold <= 0 {
		c.SlowThreshold = 200 * time.Millisecond
	}
}
