package vector

import (
	"fmt"
	"sort"
	"sync"
)

// Factory rebuilds a vector from its serialized mapping.
type Factory func(data map[string]any) (Vector, error)

// Registry maps type names to factories. Registration is expected at
// process start; lookups are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds the built-in vector kinds.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.MustRegister(TypeDense, DenseFromMap)
	DefaultRegistry.MustRegister(TypeSparse, SparseFromMap)
}

// Register adds factory under name. Names are unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("vector registry: name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("vector registry: %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is Register for init functions; it panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// Names lists registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromMap dispatches data to the factory named by its "type" field.
func (r *Registry) FromMap(data map[string]any) (Vector, error) {
	typeName, ok := data["type"].(string)
	if !ok || typeName == "" {
		return nil, fmt.Errorf("%w: missing type discriminant", ErrUnknownType)
	}
	factory, ok := r.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return factory(data)
}

// Register adds factory to DefaultRegistry.
func Register(name string, factory Factory) error {
	return DefaultRegistry.Register(name, factory)
}

// FromMap rebuilds a vector through DefaultRegistry.
func FromMap(data map[string]any) (Vector, error) {
	return DefaultRegistry.FromMap(data)
}
