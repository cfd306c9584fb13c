package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a fresh codec instance. Ownership of the returned
// instance transfers to the caller.
type Factory func() Codec

// Registry is a name-keyed table of codec factories.
//
// Registries are explicit instances rather than process-global state so a
// test or an embedding program can build an isolated one. Mutations are
// serialized and each is atomic from the perspective of concurrent queries.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register binds a factory to a name. It never silently overwrites: if the
// name is already bound the call fails and the existing binding stays in
// effect until Unregister.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("register %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register %q: algorithm already registered", name)
	}
	r.factories[name] = factory

	return nil
}

// Unregister removes a binding and reports whether one existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.factories[name]
	delete(r.factories, name)

	return exists
}

// Create constructs a new instance of the named algorithm.
func (r *Registry) Create(name string) (Codec, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("create %q: unknown algorithm", name)
	}

	return factory(), nil
}

// IsAvailable reports whether the named algorithm is registered.
func (r *Registry) IsAvailable(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]

	return exists
}

// List returns the registered algorithm names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
