package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
	cargoRepo "github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories/cargo"
	cratesioRepo "github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories/cratesio"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories/renderers"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register registry factories for every supported package registry
	if err := container.Provide(func() *RegistryFactories {
		factories := NewRegistryFactories()
		factories.Register(cratesioRepo.RegistryType, cratesioRepo.NewRegistryRepository)
		return factories
	}); err != nil {
		return err
	}

	// Register renderer registry with all output formats
	if err := container.Provide(func() *RendererRegistry {
		reg := NewRendererRegistry()
		reg.Register(renderers.NewTextRenderer())
		reg.Register(renderers.NewJSONRenderer())
		reg.Register(renderers.NewTableRenderer())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.WorkspaceRepository {
		return cargoRepo.NewWorkspaceRepository()
	}); err != nil {
		return err
	}

	return nil
}
