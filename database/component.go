package database

import (
	"context"
	"fmt"

	"github.com/shroudlabs/go-shroud-data/component"
	"github.com/shroudlabs/go-shroud-data/logger"
)

// Component database component
// Opens all configured instances on Start and exposes the Manager
type Component struct {
	configs map[string]Config
	manager *Manager
	log     *logger.CtxZapLogger
}

// NewComponent creates the database component
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name
func (c *Component) Name() string {
	return component.ComponentDatabase
}

// DependsOn declares depended-on components
func (c *Component) DependsOn() []string {
	return []string{component.ComponentLogger}
}

// Init loads instance configurations
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	var configs map[string]Config
	if err := loader.Unmarshal("database", &configs); err != nil {
		return fmt.Errorf("load database config: %w", err)
	}
	if len(configs) == 0 {
		return fmt.Errorf("database config has no instances")
	}

	c.configs = configs
	c.log = logger.GetLogger(component.ComponentDatabase)
	return nil
}

// Start opens every configured instance
func (c *Component) Start(ctx context.Context) error {
	manager, err := NewManager(c.configs, nil, c.log)
	if err != nil {
		return err
	}
	c.manager = manager
	c.log.Info("database component started")
	return nil
}

// Stop closes all connections (idempotent)
func (c *Component) Stop(ctx context.Context) error {
	if c.manager != nil {
		c.manager.Close()
		c.manager = nil
	}
	if c.log != nil {
		c.log.Info("database component stopped")
	}
	return nil
}

// GetManager returns the manager, or nil before Start
func (c *Component) GetManager() *Manager {
	return c.manager
}

// GetHealthChecker exposes the health check
func (c *Component) GetHealthChecker() component.HealthChecker {
	return c
}

// Check pings every connection
func (c *Component) Check(ctx context.Context) error {
	if c.manager == nil {
		return nil
	}
	return c.manager.Ping()
}
