// Package di wires started components into a samber/do injector
package di

import (
	"github.com/samber/do/v2"

	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/component"
	"github.com/shroudlabs/go-shroud-data/database"
	"github.com/shroudlabs/go-shroud-data/redis"
	"github.com/shroudlabs/go-shroud-data/storage"
)

// RegisterCoreComponents registers the usable surfaces of started components.
// Components that are not started (or carry no value) are skipped.
func RegisterCoreComponents(injector do.Injector, comps ...component.Component) {
	for _, comp := range comps {
		switch c := comp.(type) {
		case *database.Component:
			if mgr := c.GetManager(); mgr != nil {
				do.ProvideValue(injector, mgr)
			}
		case *redis.Component:
			if mgr := c.GetManager(); mgr != nil {
				do.ProvideValue(injector, mgr)
			}
		case *cache.Component:
			if cacher := c.GetCacher(); cacher != nil {
				do.ProvideValue[cache.DataCacher](injector, cacher)
			}
		case *storage.Component:
			if storer := c.GetStorer(); storer != nil {
				do.ProvideValue[storage.Storer](injector, storer)
			}
		}
	}
}

// ProvideCachedDataStorer builds the cache-aside decorator from the injected
// Storer and DataCacher
func ProvideCachedDataStorer(i do.Injector) (*storage.CachedDataStorer, error) {
	storer, err := do.Invoke[storage.Storer](i)
	if err != nil {
		return nil, err
	}
	cacher, err := do.Invoke[cache.DataCacher](i)
	if err != nil {
		return nil, err
	}
	return storage.NewCachedDataStorer(storer, cacher), nil
}

// ProvideHealthCheck builds the storage health check from whatever of the two
// collaborators the injector holds; either may be absent
func ProvideHealthCheck(i do.Injector) (*storage.HealthCheck, error) {
	storer, _ := do.Invoke[storage.Storer](i)
	cacher, _ := do.Invoke[cache.DataCacher](i)
	return storage.NewHealthCheck(storer, cacher), nil
}
