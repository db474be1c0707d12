package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitfleet/config"
)

// ControllerBind holds the Cobra metadata of a subcommand.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is one gitfleet subcommand.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(cmd *cobra.Command)
	Execute(cmd *cobra.Command, args []string) error
}

// resolveConfigPath returns the --config flag value or the first config file
// found in the default locations.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return configPath, nil
	}

	found, err := config.FindConfigFile()
	if err != nil {
		return "", fmt.Errorf("%w, specify one with --config or create gitfleet.yaml", err)
	}
	return found, nil
}

func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	configPath, err := resolveConfigPath(cmd)
	if err != nil {
		return "", nil, err
	}

	logger.Infof("Using config file: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}
	return configPath, cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "Only process this provider type (gitlab, github, azuredevops)")
	cmd.Flags().String("name", "", "Only process this group, user or organization")
}
