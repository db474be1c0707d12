package provider

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
)

// Registry manages all registered repository source implementations.
type Registry struct {
	providers map[string]Factory
}

// Factory is a constructor function that creates a Provider from its configuration
// and the environment the credential is read from.
type Factory func(cfg config.ProviderConfig, env domain.EnvLookup) domain.Provider

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Factory),
	}
}

// Register adds a provider factory under the given name (e.g. "gitlab").
func (r *Registry) Register(name string, factory Factory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given configuration.
func (r *Registry) Get(cfg config.ProviderConfig, env domain.EnvLookup) (domain.Provider, error) {
	factory, ok := r.providers[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", cfg.Type)
	}
	return factory(cfg.WithDefaults(), env), nil
}

// Names returns the registered provider names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
