package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cargo-outdated/internal"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/controllers"
)

func newContainer() *dig.Container {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}
	return container
}

func injectAppContext(container *dig.Container) *internal.AppInternal {
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectOutdatedController(container *dig.Container) *controllers.OutdatedController {
	var outdatedController *controllers.OutdatedController
	if err := container.Invoke(func(oc *controllers.OutdatedController) {
		outdatedController = oc
	}); err != nil {
		panic(err)
	}

	return outdatedController
}
