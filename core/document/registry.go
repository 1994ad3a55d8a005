package document

import (
	"fmt"
	"sort"
	"sync"
)

// Factory rebuilds a document from its serialized mapping.
type Factory func(data map[string]any) (Serializable, error)

// Registry maps "type" discriminants to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry knows Document and EmbeddedDocument.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.MustRegister(TypeDocument, func(data map[string]any) (Serializable, error) {
		return DocumentFromMap(data)
	})
	DefaultRegistry.MustRegister(TypeEmbeddedDocument, func(data map[string]any) (Serializable, error) {
		return EmbeddedDocumentFromMap(data)
	})
}

// Register adds factory under name. Names are unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("document registry: name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("document registry: %q already registered", name)
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

// Names returns the registered type names in sorted order.
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

// FromMap rebuilds the concrete document named by data["type"].
func (r *Registry) FromMap(data map[string]any) (Serializable, error) {
	raw, ok := data["type"]
	if !ok {
		return nil, &MissingFieldError{Type: "document", Field: "type"}
	}
	typeName, ok := raw.(string)
	if !ok {
		return nil, &DeserializationError{Type: "document", Reason: "type discriminant is not a string"}
	}
	factory, ok := r.Lookup(typeName)
	if !ok {
		return nil, &DeserializationError{Type: typeName, Reason: "unregistered document type"}
	}
	return factory(data)
}

// Register adds factory to DefaultRegistry.
func Register(name string, factory Factory) error {
	return DefaultRegistry.Register(name, factory)
}

// FromMap rebuilds a document through DefaultRegistry.
func FromMap(data map[string]any) (Serializable, error) {
	return DefaultRegistry.FromMap(data)
}
