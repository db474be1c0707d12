package controllers

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitfleet/application"
	"github.com/rios0rios0/gitfleet/infrastructure/workspace"
)

// ErrFetchFailures is returned after the output was printed when at least one
// provider could not be fetched.
var ErrFetchFailures = errors.New("some providers could not be fetched")

// ListController handles the "list" subcommand.
type ListController struct {
	service *application.DiscoveryService
}

// NewListController creates a new ListController.
func NewListController(service *application.DiscoveryService) *ListController {
	return &ListController{service: service}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() ControllerBind {
	return ControllerBind{
		Use:   "list",
		Short: "List the repositories of every configured namespace",
		Long: `Validate every configured provider, then fetch the repositories of each
namespace and print where each one would be cloned, which URL would be used
and whether the destination already holds a clone.`,
	}
}

// AddFlags adds the list-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", formatTable, "Output format: table, json or yaml")
}

// Execute discovers and prints the repositories.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	providerFilter, _ := cmd.Flags().GetString("provider")
	nameFilter, _ := cmd.Flags().GetString("name")
	format, _ := cmd.Flags().GetString("output")

	result, err := it.service.Discover(commandContext(cmd), cfg, application.DiscoverOptions{
		Verbose:      verbose,
		ProviderType: providerFilter,
		Name:         nameFilter,
	})
	if err != nil {
		return err
	}

	statuses, err := workspace.Inspect(result.Repositories)
	if err != nil {
		return err
	}
	if renderErr := render(cmd.OutOrStdout(), format, statuses); renderErr != nil {
		return renderErr
	}

	if result.Errors > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFetchFailures, result.Errors, result.Providers)
	}
	return nil
}
