package providers

import (
	"fmt"
	"sort"
)

// Factory constructs a provider instance from configuration.
type Factory func(cfg Config) (Provider, error)

// Registry maps provider kinds ("openai", "anthropic", ...) to factories.
//
// The registry is an explicit value passed to whoever constructs
// providers; there is no package-global registration side channel, so
// tests and embedders control exactly which kinds exist.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a provider kind. Registering the same kind
// twice is a programming error.
func (r *Registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("provider kind must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for provider kind %q must not be nil", kind)
	}
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("provider kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// New constructs a provider of the given kind.
func (r *Registry) New(kind string, cfg Config) (Provider, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, &ConfigError{
			Provider: kind,
			Field:    "provider",
			Message:  fmt.Sprintf("unknown provider kind (known: %v)", r.Kinds()),
		}
	}
	if cfg.Name == "" {
		cfg.Name = kind
	}
	return factory(cfg)
}

// Kinds returns the registered provider kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
