package controllers

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitfleet/application"
	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
)

const defaultConfigName = "gitfleet.yaml"

// AddController handles the "add" subcommand.
type AddController struct{}

// NewAddController creates a new AddController.
func NewAddController() *AddController {
	return &AddController{}
}

// GetBind returns the Cobra command metadata for the add controller.
func (it *AddController) GetBind() ControllerBind {
	return ControllerBind{
		Use:   "add <namespace-url>",
		Short: "Add a group, user or organization to the config file",
		Long: `Append a provider entry built from the web address of a namespace:

  gitfleet add https://gitlab.com/acme/platform --path code/platform
  gitfleet add https://github.com/octo --path code/octo --https
  gitfleet add https://git.example.com/infra --type gitlab --path code/infra

The config file is created when none exists. HCL config files are never
rewritten, edit them by hand.`,
	}
}

// AddFlags adds the add-specific flags to the given Cobra command.
func (it *AddController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Provider type for self-hosted instances (gitlab, github, azuredevops)")
	cmd.Flags().String("path", "", "Local directory the repositories are cloned into")
	cmd.Flags().String("env-var", "", "Environment variable holding the token (default per provider type)")
	cmd.Flags().Int("max", -1, "Maximum number of repositories to fetch (default 20)")
	cmd.Flags().Int("max-pages", 0, "Stop listing after this many pages (0 means no limit)")
	cmd.Flags().Bool("https", false, "Clone over HTTP(S) instead of SSH")
}

// Execute appends the namespace to the config file.
func (it *AddController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one namespace URL")
	}

	providerType, _ := cmd.Flags().GetString("type")
	entry, err := application.ParseNamespaceURL(args[0], providerType)
	if err != nil {
		return err
	}

	entry.Path, _ = cmd.Flags().GetString("path")
	entry.EnvVar, _ = cmd.Flags().GetString("env-var")
	entry.MaxPages, _ = cmd.Flags().GetInt("max-pages")
	if maxResults, _ := cmd.Flags().GetInt("max"); maxResults >= 0 {
		entry.Max = &maxResults
	}
	if https, _ := cmd.Flags().GetBool("https"); https {
		useSSH := false
		entry.UseSSH = &useSSH
	}

	configPath, cfg, err := configForUpdate(cmd)
	if err != nil {
		return err
	}

	for _, existing := range cfg.Providers {
		if existing.Type == entry.Type && existing.Name == entry.Name &&
			existing.URL == entry.WithDefaults().URL {
			return fmt.Errorf(
				"%w: %s %q is already configured", domain.ErrInvalidConfiguration, entry.Type, entry.Name,
			)
		}
	}

	cfg.Providers = append(cfg.Providers, entry)
	if validateErr := config.Validate(cfg); validateErr != nil {
		return validateErr
	}
	if saveErr := config.Save(configPath, cfg); saveErr != nil {
		return saveErr
	}

	logger.Infof("Added %s %q to %s", entry.Type, entry.Name, configPath)
	return nil
}

// configForUpdate loads the config that "add" appends to, or starts an empty
// one when no config file exists yet.
func configForUpdate(cmd *cobra.Command) (string, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, findErr := config.FindConfigFile()
		if findErr != nil {
			return defaultConfigName, &config.Config{}, nil //nolint:nilerr // a missing file is created
		}
		configPath = found
	}

	if _, statErr := os.Stat(configPath); errors.Is(statErr, os.ErrNotExist) {
		return configPath, &config.Config{}, nil
	}

	// the file may hold no provider yet, Execute validates the result
	cfg, err := config.Read(configPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}
	return configPath, cfg, nil
}
