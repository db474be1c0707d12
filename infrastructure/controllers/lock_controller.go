package controllers

import (
	"errors"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitfleet/application"
	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/lockfile"
)

// LockController handles the "lock" subcommand.
type LockController struct {
	service *application.DiscoveryService
}

// NewLockController creates a new LockController.
func NewLockController(service *application.DiscoveryService) *LockController {
	return &LockController{service: service}
}

// GetBind returns the Cobra command metadata for the lock controller.
func (it *LockController) GetBind() ControllerBind {
	return ControllerBind{
		Use:   "lock",
		Short: "Record the discovered repositories in the workspace lock file",
		Long: `Discover the repositories of every configured namespace and write them to
workspace-lock.yaml, next to the config file unless --lock-file says otherwise.
Repositories that appeared or disappeared since the previous lock are reported.

The lock file is not rewritten when a provider fails to fetch, so a transient
error never drops repositories from it.`,
	}
}

// AddFlags adds the lock-specific flags to the given Cobra command.
func (it *LockController) AddFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
	cmd.Flags().String("lock-file", "", "Path of the lock file (default: next to the config file)")
}

// Execute discovers the repositories and writes the lock file.
func (it *LockController) Execute(cmd *cobra.Command, _ []string) error {
	configPath, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	providerFilter, _ := cmd.Flags().GetString("provider")
	nameFilter, _ := cmd.Flags().GetString("name")
	lockPath, _ := cmd.Flags().GetString("lock-file")
	if lockPath == "" {
		lockPath = filepath.Join(filepath.Dir(configPath), lockfile.DefaultName)
	}

	result, err := it.service.Discover(commandContext(cmd), cfg, application.DiscoverOptions{
		Verbose:      verbose,
		ProviderType: providerFilter,
		Name:         nameFilter,
	})
	if err != nil {
		return err
	}
	if result.Errors > 0 {
		logger.Errorf("Not writing %s", lockPath)
		return ErrFetchFailures
	}

	var previous []domain.Repository
	if _, statErr := os.Stat(lockPath); statErr == nil {
		previous, err = lockfile.Read(lockPath)
		if err != nil {
			return err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	added, removed := lockfile.Diff(previous, result.Repositories)
	for _, path := range added {
		logger.Infof("+ %s", path)
	}
	for _, path := range removed {
		logger.Infof("- %s", path)
	}

	if writeErr := lockfile.Write(lockPath, result.Repositories); writeErr != nil {
		return writeErr
	}
	logger.Infof(
		"Wrote %d repositories to %s (%d added, %d removed)",
		len(result.Repositories), lockPath, len(added), len(removed),
	)
	return nil
}
