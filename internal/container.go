package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cargo-outdated/internal/domain/commands"
	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/controllers"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories"
)

// RegisterProviders registers every layer of cargo-outdated with the DIG container,
// bottom-up: registry/workspace/renderer adapters, entities, the scan command, controllers.
func RegisterProviders(container *dig.Container) error {
	layers := []func(*dig.Container) error{
		repositories.RegisterProviders,
		entities.RegisterProviders,
		commands.RegisterProviders,
		controllers.RegisterProviders,
	}
	for _, register := range layers {
		if err := register(container); err != nil {
			return err
		}
	}

	return container.Provide(NewAppInternal)
}
