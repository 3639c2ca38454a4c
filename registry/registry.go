// Package registry runs component lifecycles in dependency order
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shroudlabs/go-shroud-data/component"
	"github.com/shroudlabs/go-shroud-data/logger"
)

const optionalPrefix = "optional:"

// Registry holds registered components and drives Init/Start/Stop across them.
// Dependency layers run concurrently; Stop walks the layers in reverse.
type Registry struct {
	mu         sync.RWMutex
	components map[string]component.Component
	log        *logger.CtxZapLogger
}

// NewRegistry creates a component registry
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]component.Component),
		log:        logger.GetLogger("registry"),
	}
}

// Register adds a component; names must be unique
func (r *Registry) Register(comp component.Component) error {
	if comp == nil {
		return fmt.Errorf("component cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := comp.Name()
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}

	r.components[name] = comp
	return nil
}

// MustRegister adds a component and panics on failure (core wiring only)
func (r *Registry) MustRegister(comp component.Component) {
	if err := r.Register(comp); err != nil {
		panic(fmt.Sprintf("register component %q: %v", comp.Name(), err))
	}
}

// Get returns a registered component by name
func (r *Registry) Get(name string) (component.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comp, ok := r.components[name]
	return comp, ok
}

// Has reports whether a component is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// GetTyped returns a registered component cast to its concrete type
func GetTyped[T component.Component](r *Registry, name string) (T, bool) {
	var zero T
	comp, ok := r.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Init initializes every component in dependency order, handing each the loader
func (r *Registry) Init(ctx context.Context, loader component.ConfigLoader) error {
	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for _, layer := range layers {
		if err := r.runLayer(layer, func(c component.Component) error {
			r.log.DebugCtx(ctx, "initializing component", zap.String("component", c.Name()))
			return c.Init(ctx, loader)
		}); err != nil {
			return err
		}
	}

	r.log.InfoCtx(ctx, "all components initialized", zap.Int("total", r.count()))
	return nil
}

// Start starts every component in dependency order
func (r *Registry) Start(ctx context.Context) error {
	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for _, layer := range layers {
		if err := r.runLayer(layer, func(c component.Component) error {
			r.log.DebugCtx(ctx, "starting component", zap.String("component", c.Name()))
			return c.Start(ctx)
		}); err != nil {
			return err
		}
	}

	r.log.InfoCtx(ctx, "all components started")
	return nil
}

// Stop stops every component, reverse dependency order, ignoring errors
func (r *Registry) Stop(ctx context.Context) error {
	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for i := len(layers) - 1; i >= 0; i-- {
		var wg sync.WaitGroup
		for _, comp := range layers[i] {
			wg.Add(1)
			go func(c component.Component) {
				defer wg.Done()
				_ = c.Stop(ctx)
			}(comp)
		}
		wg.Wait()
	}

	r.log.InfoCtx(ctx, "all components stopped")
	return nil
}

// HealthCheckers collects the checkers of every component exposing one
func (r *Registry) HealthCheckers() []component.HealthChecker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var checkers []component.HealthChecker
	for _, comp := range r.components {
		if provider, ok := comp.(component.HealthCheckProvider); ok {
			if checker := provider.GetHealthChecker(); checker != nil {
				checkers = append(checkers, checker)
			}
		}
	}
	return checkers
}

func (r *Registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// runLayer executes one lifecycle function across a dependency layer,
// concurrently when the layer holds more than one component
func (r *Registry) runLayer(layer []component.Component, fn func(component.Component) error) error {
	if len(layer) == 1 {
		comp := layer[0]
		if err := fn(comp); err != nil {
			return fmt.Errorf("component %q: %w", comp.Name(), err)
		}
		return nil
	}

	type result struct {
		comp component.Component
		err  error
	}
	results := make(chan result, len(layer))
	for _, comp := range layer {
		go func(c component.Component) {
			results <- result{comp: c, err: fn(c)}
		}(comp)
	}

	for range layer {
		res := <-results
		if res.err != nil {
			return fmt.Errorf("component %q: %w", res.comp.Name(), res.err)
		}
	}
	return nil
}

// resolveLayers groups components into topological layers.
// Dependencies with the "optional:" prefix are skipped when unregistered;
// a missing hard dependency or a cycle is an error.
func (r *Registry) resolveLayers() ([][]component.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inDegree := make(map[string]int)
	graph := make(map[string][]string)
	for name := range r.components {
		inDegree[name] = 0
		graph[name] = nil
	}

	for name, comp := range r.components {
		for _, dep := range comp.DependsOn() {
			depName := dep
			optional := false
			if strings.HasPrefix(dep, optionalPrefix) {
				depName = dep[len(optionalPrefix):]
				optional = true
			}

			if _, ok := r.components[depName]; !ok {
				if !optional {
					return nil, fmt.Errorf("component %q depends on unregistered %q", name, depName)
				}
				continue
			}

			graph[depName] = append(graph[depName], name)
			inDegree[name]++
		}
	}

	var layers [][]component.Component
	processed := make(map[string]bool)

	for len(processed) < len(r.components) {
		var current []string
		for name, degree := range inDegree {
			if !processed[name] && degree == 0 {
				current = append(current, name)
				processed[name] = true
			}
		}
		if len(current) == 0 {
			return nil, fmt.Errorf("dependency cycle detected")
		}

		layer := make([]component.Component, 0, len(current))
		for _, name := range current {
			layer = append(layer, r.components[name])
			for _, next := range graph[name] {
				inDegree[next]--
			}
		}
		layers = append(layers, layer)
	}
	return layers, nil
}
