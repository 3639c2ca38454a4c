package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/component"
	"github.com/shroudlabs/go-shroud-data/database"
	"github.com/shroudlabs/go-shroud-data/logger"
	"github.com/shroudlabs/go-shroud-data/validator"
)

// Component storage component
// Builds the configured backend on Start and optionally wraps it with the
// cache-aside decorator when a cacher has been injected
type Component struct {
	config *Config
	storer Storer
	log    *logger.CtxZapLogger

	// injected from outside before Start
	dbManager *database.Manager
	cacher    cache.DataCacher
}

// NewComponent creates the storage component
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name
func (c *Component) Name() string {
	return component.ComponentStorage
}

// DependsOn declares depended-on components
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentLogger,
		"optional:" + component.ComponentDatabase,
		"optional:" + component.ComponentCache,
	}
}

// Init loads and validates configuration
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	var cfg Config
	if err := loader.Unmarshal("storage", &cfg); err != nil {
		return fmt.Errorf("load storage config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := validator.ValidateConfig(&cfg); err != nil {
		return ErrConfigInvalid.Wrap(err)
	}

	c.config = &cfg
	c.log = logger.GetLogger(ModuleName)
	return nil
}

// Start builds the configured backend
func (c *Component) Start(ctx context.Context) error {
	var base Storer
	switch c.config.Backend {
	case BackendGorm:
		if c.dbManager == nil {
			return ErrConfigInvalid.WithMsg("gorm backend configured but no database manager injected")
		}
		db := c.dbManager.DB(c.config.Instance)
		if db == nil {
			return ErrConfigInvalid.WithMsgf("database instance not found: %s", c.config.Instance)
		}
		storer, err := NewGormDataStorer(db)
		if err != nil {
			return err
		}
		base = storer

	case BackendRemote:
		base = NewRemoteDataStorer(c.config.BaseURL)

	default:
		return ErrConfigInvalid.WithMsgf("unknown backend: %s", c.config.Backend)
	}

	if c.config.CacheEnabled {
		if c.cacher == nil {
			return ErrConfigInvalid.WithMsg("cache enabled but no cacher injected")
		}
		c.storer = NewCachedDataStorer(base, c.cacher)
	} else {
		c.storer = base
	}

	c.log.Info("storage component started",
		zap.String("backend", c.config.Backend),
		zap.Bool("cached", c.config.CacheEnabled),
	)
	return nil
}

// Stop releases the backend (idempotent; connections are owned by the managers)
func (c *Component) Stop(ctx context.Context) error {
	c.storer = nil
	if c.log != nil {
		c.log.Info("storage component stopped")
	}
	return nil
}

// SetDatabaseManager injects the database manager
// Required before Start when the gorm backend is configured
func (c *Component) SetDatabaseManager(manager *database.Manager) {
	c.dbManager = manager
}

// SetCacher injects the cacher used by the cache-aside decorator
func (c *Component) SetCacher(cacher cache.DataCacher) {
	c.cacher = cacher
}

// GetStorer returns the effective storer, or nil before Start
func (c *Component) GetStorer() Storer {
	return c.storer
}

// GetHealthChecker exposes the health check
func (c *Component) GetHealthChecker() component.HealthChecker {
	return NewHealthCheck(c.storer, c.cacher)
}
