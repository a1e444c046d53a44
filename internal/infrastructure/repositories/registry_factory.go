package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	domainRepos "github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// RegistryFactory is a constructor function that creates a RegistryRepository from its settings.
type RegistryFactory func(cfg entities.RegistrySettings) domainRepos.RegistryRepository

// RegistryFactories manages all registered package registry implementations.
type RegistryFactories struct {
	factories map[string]RegistryFactory
}

// NewRegistryFactories creates an empty factory set.
func NewRegistryFactories() *RegistryFactories {
	return &RegistryFactories{
		factories: make(map[string]RegistryFactory),
	}
}

// Register adds a registry factory under the given type (e.g. "cratesio").
func (r *RegistryFactories) Register(registryType string, factory RegistryFactory) {
	r.factories[registryType] = factory
}

// Get returns a configured registry client for the given settings.
func (r *RegistryFactories) Get(cfg entities.RegistrySettings) (domainRepos.RegistryRepository, error) {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown registry type: %q", cfg.Type)
	}
	return factory(cfg), nil
}

// Names returns the registered registry types in lexical order.
func (r *RegistryFactories) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
