package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewOutdatedController); err != nil {
		return err
	}
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers into a slice for the AppInternal.
func NewControllers(listController *ListController) *[]entities.Controller {
	return &[]entities.Controller{
		listController,
	}
}
