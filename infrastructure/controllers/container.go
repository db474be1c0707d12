package controllers

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewValidateController); err != nil {
		return err
	}
	if err := container.Provide(NewLockController); err != nil {
		return err
	}
	if err := container.Provide(NewAddController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice, in the order the
// subcommands are listed.
func NewControllers(
	listController *ListController,
	validateController *ValidateController,
	lockController *LockController,
	addController *AddController,
) *[]Controller {
	return &[]Controller{
		listController,
		validateController,
		lockController,
		addController,
	}
}
