package cache

import (
	"context"

	"github.com/shroudlabs/go-shroud-data/component"
	"github.com/shroudlabs/go-shroud-data/logger"
	shroudredis "github.com/shroudlabs/go-shroud-data/redis"
	"github.com/shroudlabs/go-shroud-data/validator"
	"go.uber.org/zap"
)

// ComponentName component name
const ComponentName = "cache"

// Component cache component
// Owns the configured cacher backend and exposes it to the storage layer
type Component struct {
	config *Config
	cacher DataCacher
	memory *MemoryDataCacher
	log    *logger.CtxZapLogger

	// injected from outside before Start when the redis store is configured
	redisManager *shroudredis.Manager
}

// NewComponent creates the cache component
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name
func (c *Component) Name() string {
	return ComponentName
}

// DependsOn declares depended-on components
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentLogger,
		"optional:" + component.ComponentRedis,
	}
}

// Init loads and validates configuration
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	var cfg Config
	if err := loader.Unmarshal("cache", &cfg); err != nil {
		// missing section means the component stays disabled
		cfg = Config{Enabled: false}
	}

	cfg.ApplyDefaults()
	if err := validator.ValidateConfig(&cfg); err != nil {
		return ErrConfigInvalid.Wrap(err)
	}

	c.config = &cfg
	c.log = logger.GetLogger(ModuleName)
	return nil
}

// Start creates the configured cacher backend
func (c *Component) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.log.Info("cache component disabled")
		return nil
	}

	switch c.config.Store {
	case StoreRedis:
		if c.redisManager == nil {
			return ErrConfigInvalid.WithMsg("redis store configured but no redis manager injected")
		}
		client := c.redisManager.Client(c.config.Instance)
		if client == nil {
			return ErrConfigInvalid.WithMsgf("redis instance not found: %s", c.config.Instance)
		}
		c.cacher = NewRedisDataCacher(client, c.config.KeyPrefix, c.config.DefaultTTL, nil)

	case StoreMemory:
		c.memory = NewMemoryDataCacher(c.config.MaxEntries, c.config.DefaultTTL)
		c.cacher = c.memory

	default:
		return ErrConfigInvalid.WithMsgf("unknown store: %s", c.config.Store)
	}

	c.log.Info("cache component started",
		zap.String("store", c.config.Store),
		zap.Duration("default_ttl", c.config.DefaultTTL),
	)
	return nil
}

// Stop releases the cacher backend (idempotent)
func (c *Component) Stop(ctx context.Context) error {
	if c.memory != nil {
		c.memory.Close()
		c.memory = nil
	}
	c.cacher = nil
	if c.log != nil {
		c.log.Info("cache component stopped")
	}
	return nil
}

// SetRedisManager injects the redis manager
// Required before Start when the redis store is configured
func (c *Component) SetRedisManager(manager *shroudredis.Manager) {
	c.redisManager = manager
}

// GetCacher returns the active cacher, or nil when disabled or not started
func (c *Component) GetCacher() DataCacher {
	return c.cacher
}

// GetHealthChecker exposes the health check
func (c *Component) GetHealthChecker() component.HealthChecker {
	return c
}

// Check probes the active cacher with a short-lived write
func (c *Component) Check(ctx context.Context) error {
	if c.cacher == nil {
		return nil // disabled counts as healthy
	}
	_, err := c.cacher.Exists(ctx, "__health_check__")
	return err
}
