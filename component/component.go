// Package component provides the component interface definitions
// This is the lowest-level package; it depends on no business package to avoid import cycles
package component

import "context"

// Component names of the built-in components
const (
	ComponentLogger   = "logger"
	ComponentDatabase = "database"
	ComponentRedis    = "redis"
	ComponentCache    = "cache"
	ComponentStorage  = "storage"
)

// Component unified lifecycle management interface
//
// Lifecycle: Init → Start → Stop
type Component interface {
	// Name component name (unique identifier)
	Name() string

	// DependsOn declares the names of depended-on components
	//
	// Optional dependencies use the "optional:" prefix:
	//   return []string{"logger", "optional:redis"}
	DependsOn() []string

	// Init initializes the component (creates resources, reads config from loader,
	// does not open outward connections)
	Init(ctx context.Context, loader ConfigLoader) error

	// Start starts the component (connects to external services)
	Start(ctx context.Context) error

	// Stop stops the component (releases resources, must be idempotent)
	Stop(ctx context.Context) error
}

// HealthChecker health check interface
// Components may optionally implement this to report their health
type HealthChecker interface {
	// Check returns nil when healthy
	Check(ctx context.Context) error

	// Name returns the check name (e.g. "database", "cache")
	Name() string
}

// HealthCheckProvider optional interface exposing a component's health checker
type HealthCheckProvider interface {
	GetHealthChecker() HealthChecker
}
