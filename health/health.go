// Package health aggregates component health checks into one report
package health

import (
	"time"

	"github.com/shroudlabs/go-shroud-data/component"
)

// Status health state of a check or of the whole report
type Status string

const (
	// StatusHealthy all good
	StatusHealthy Status = "healthy"
	// StatusUnhealthy at least one check failed
	StatusUnhealthy Status = "unhealthy"
)

// Checker is an alias for component.HealthChecker
type Checker = component.HealthChecker

// CheckResult outcome of a single check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// Report aggregated outcome across all registered checks
type Report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Duration  time.Duration          `json:"duration"`
	Checks    map[string]CheckResult `json:"checks"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// IsHealthy reports whether every check passed
func (r *Report) IsHealthy() bool {
	return r.Status == StatusHealthy
}
