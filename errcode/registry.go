package errcode

import (
	"fmt"
	"sync"
)

// Registry error code registry (prevents code conflicts between modules)
type Registry struct {
	mu    sync.RWMutex
	codes map[int]string // code -> module:message
}

var globalRegistry = &Registry{
	codes: make(map[int]string),
}

// Register registers an error code in the global registry
// Panics if the code is already registered by a different module/message
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register registers an error code in the registry
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := err.Code()
	key := fmt.Sprintf("%s:%s", err.Module(), err.Message())

	if existingKey, exists := r.codes[code]; exists {
		if existingKey != key {
			panic(fmt.Sprintf(
				"error code conflict: code %d is already registered as %s, cannot register as %s",
				code, existingKey, key,
			))
		}
		// Same code and key, idempotent re-registration is allowed
		return err
	}

	r.codes[code] = key
	return err
}

// GetAll returns all registered error codes
func (r *Registry) GetAll() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make(map[int]string, len(r.codes))
	for k, v := range r.codes {
		codes[k] = v
	}
	return codes
}

// Count returns the number of registered error codes
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// Clear empties the registry (tests only)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = make(map[int]string)
}

// GetAllRegisteredCodes returns all error codes in the global registry
func GetAllRegisteredCodes() map[int]string {
	return globalRegistry.GetAll()
}
