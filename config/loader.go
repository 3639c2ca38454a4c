// Package config provides a viper-backed configuration loader
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader configuration loader (file + environment variables)
// Implements component.ConfigLoader
type Loader struct {
	v           *viper.Viper
	loadedFiles []string
}

// NewLoader creates a configuration loader
// envPrefix enables environment overrides (e.g. "SHROUD" maps SHROUD_CACHE_ENABLED
// to cache.enabled); empty disables them
func NewLoader(envPrefix string) *Loader {
	v := viper.New()
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	return &Loader{v: v}
}

// LoadFile reads and merges a configuration file (yaml, toml, json by extension)
// Later files override earlier ones key by key
func (l *Loader) LoadFile(path string) error {
	l.v.SetConfigFile(path)
	if err := l.v.MergeInConfig(); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	l.loadedFiles = append(l.loadedFiles, path)
	return nil
}

// Set writes a configuration value (highest priority, used by tests and wiring code)
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// LoadedFiles returns the list of files merged so far
func (l *Loader) LoadedFiles() []string {
	return append([]string(nil), l.loadedFiles...)
}

// Get returns a raw configuration value
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// Unmarshal deserializes a configuration section into a struct
func (l *Loader) Unmarshal(key string, v interface{}) error {
	if !l.v.IsSet(key) {
		return fmt.Errorf("config key not set: %s", key)
	}
	return l.v.UnmarshalKey(key, v)
}

// GetString returns a string configuration value
func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

// GetInt returns an integer configuration value
func (l *Loader) GetInt(key string) int {
	return l.v.GetInt(key)
}

// GetBool returns a boolean configuration value
func (l *Loader) GetBool(key string) bool {
	return l.v.GetBool(key)
}

// IsSet reports whether a configuration key exists
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}
