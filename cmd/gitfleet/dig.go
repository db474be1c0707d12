package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitfleet/application"
	"github.com/rios0rios0/gitfleet/infrastructure/controllers"
	"github.com/rios0rios0/gitfleet/infrastructure/provider"
)

// registerProviders registers every layer bottom-up:
// providers -> application services -> controllers.
func registerProviders(container *dig.Container) error {
	if err := provider.RegisterProviders(container); err != nil {
		return err
	}
	if err := application.RegisterProviders(container); err != nil {
		return err
	}
	return controllers.RegisterProviders(container)
}

func injectControllers() []controllers.Controller {
	container := dig.New()

	if err := registerProviders(container); err != nil {
		panic(err)
	}

	var all *[]controllers.Controller
	if err := container.Invoke(func(c *[]controllers.Controller) {
		all = c
	}); err != nil {
		panic(err)
	}

	return *all
}
