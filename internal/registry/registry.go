package registry

import (
	"fmt"
	"sync"

	"github.com/nfrund/hallrush/internal/config"
)

// Key is a type-safe key for registering and retrieving services.
// The string value should be unique, e.g. "hallrush.service".
type Key[T any] string

// Registry lets modules share and discover services at runtime.
type Registry struct {
	services sync.Map
	cfg      *config.Config
}

// New creates a registry carrying the application configuration.
func New(cfg *config.Config) *Registry {
	return &Registry{cfg: cfg}
}

// Config returns the application configuration.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// Set registers a service instance against a key.
func Set[T any](r *Registry, key Key[T], value T) {
	r.services.Store(string(key), value)
}

// Get retrieves a service by key.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, ok := r.services.Load(string(key))
	if !ok {
		var zero T
		return zero, false
	}
	result, ok := val.(T)
	return result, ok
}

// MustGet retrieves a service or panics. Use it when wiring essential
// dependencies at startup.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("service not found for key: %v", key))
	}
	return val
}
