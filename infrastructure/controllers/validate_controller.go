package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitfleet/application"
)

// ValidateController handles the "validate" subcommand.
type ValidateController struct {
	service *application.DiscoveryService
}

// NewValidateController creates a new ValidateController.
func NewValidateController(service *application.DiscoveryService) *ValidateController {
	return &ValidateController{service: service}
}

// GetBind returns the Cobra command metadata for the validate controller.
func (it *ValidateController) GetBind() ControllerBind {
	return ControllerBind{
		Use:   "validate",
		Short: "Check the configuration and credentials without touching the network",
	}
}

// AddFlags adds the validate-specific flags to the given Cobra command.
func (it *ValidateController) AddFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
}

// Execute validates the selected providers.
func (it *ValidateController) Execute(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	providerFilter, _ := cmd.Flags().GetString("provider")
	nameFilter, _ := cmd.Flags().GetString("name")

	providers, err := it.service.Providers(cfg, application.DiscoverOptions{
		ProviderType: providerFilter,
		Name:         nameFilter,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, provider := range providers {
		fmt.Fprintln(out, provider)
	}
	if validateErr := it.service.Validate(providers); validateErr != nil {
		return validateErr
	}

	fmt.Fprintf(out, "%d provider(s) ready\n", len(providers))
	return nil
}
