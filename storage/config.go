package storage

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Backend kinds
const (
	BackendGorm   = "gorm"
	BackendRemote = "remote"
)

// Config storage component configuration
type Config struct {
	// Backend: gorm or remote
	Backend string `mapstructure:"backend"`

	// Instance database instance name (gorm backend only)
	Instance string `mapstructure:"instance"`

	// BaseURL remote data service address (remote backend only)
	BaseURL string `mapstructure:"base_url"`

	// CacheEnabled whether reads and writes go through the cache decorator
	CacheEnabled bool `mapstructure:"cache_enabled"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendGorm, BackendRemote)),
		validation.Field(&c.Instance, validation.When(c.Backend == BackendGorm, validation.Required)),
		validation.Field(&c.BaseURL, validation.When(c.Backend == BackendRemote, validation.Required)),
	)
}

// ApplyDefaults applies default values
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendGorm
	}
	if c.Backend == BackendGorm && c.Instance == "" {
		c.Instance = "default"
	}
}
