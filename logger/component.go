package logger

import (
	"context"

	"github.com/shroudlabs/go-shroud-data/component"
)

// Component logger component
// Initializes the global manager from the "logger" config section; every other
// component depends on it so GetLogger hands out configured loggers
type Component struct {
	log *CtxZapLogger
}

// NewComponent creates the logger component
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name
func (c *Component) Name() string {
	return component.ComponentLogger
}

// DependsOn declares depended-on components (none; logging comes first)
func (c *Component) DependsOn() []string {
	return nil
}

// Init initializes the global logger manager
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	var cfg ManagerConfig
	if err := loader.Unmarshal("logger", &cfg); err != nil {
		// missing section runs on defaults
		cfg = ManagerConfig{}
	}
	InitManager(cfg)
	c.log = GetLogger(component.ComponentLogger)
	return nil
}

// Start starts the component (loggers need no startup)
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop flushes and closes all log sinks (idempotent)
func (c *Component) Stop(ctx context.Context) error {
	if c.log != nil {
		globalManager.CloseAll()
		c.log = nil
	}
	return nil
}

// GetLogger returns the component's own logger
func (c *Component) GetLogger() *CtxZapLogger {
	return c.log
}
