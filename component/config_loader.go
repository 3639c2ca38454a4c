package component

// ConfigLoader configuration loader interface
//
// Components read their own configuration through this interface so that they do not
// depend on a concrete configuration structure
type ConfigLoader interface {
	// Get returns a raw configuration value
	Get(key string) interface{}

	// Unmarshal deserializes a configuration section into a struct
	//
	// Example:
	//   var cfg cache.Config
	//   if err := loader.Unmarshal("cache", &cfg); err != nil { ... }
	Unmarshal(key string, v interface{}) error

	// GetString returns a string configuration value
	GetString(key string) string

	// GetInt returns an integer configuration value
	GetInt(key string) int

	// GetBool returns a boolean configuration value
	GetBool(key string) bool

	// IsSet reports whether a configuration key exists
	IsSet(key string) bool
}
