package provider

import (
	"os"

	"go.uber.org/dig"

	"github.com/rios0rios0/gitfleet/domain"
)

// RegisterProviders registers the provider registry and the environment the
// credentials are read from with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewDefaultRegistry); err != nil {
		return err
	}
	return container.Provide(func() domain.EnvLookup { return os.LookupEnv })
}
