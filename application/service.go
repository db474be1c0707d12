package application

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
	providerPkg "github.com/rios0rios0/gitfleet/infrastructure/provider"
)

// ErrValidationFailed is returned when at least one provider is misconfigured.
// No provider is fetched in that case.
var ErrValidationFailed = errors.New("provider validation failed")

// DiscoveryService orchestrates the discovery flow:
// build providers -> validate all of them -> fetch each one.
type DiscoveryService struct {
	providerRegistry *providerPkg.Registry
	env              domain.EnvLookup
}

// NewDiscoveryService creates a new service reading credentials through env.
func NewDiscoveryService(
	providerRegistry *providerPkg.Registry,
	env domain.EnvLookup,
) *DiscoveryService {
	return &DiscoveryService{
		providerRegistry: providerRegistry,
		env:              env,
	}
}

// DiscoverOptions holds runtime options for a single discovery.
type DiscoverOptions struct {
	Verbose      bool
	ProviderType string // If set, only process providers of this type (CLI override)
	Name         string // If set, only process this namespace (CLI override)
}

// Result is the outcome of a discovery across every selected provider.
type Result struct {
	Repositories []domain.Repository
	Providers    int
	Errors       int
}

// Providers builds the providers selected by the options, in configuration order.
func (s *DiscoveryService) Providers(
	cfg *config.Config,
	opts DiscoverOptions,
) ([]domain.Provider, error) {
	var providers []domain.Provider
	for _, provCfg := range cfg.Providers {
		// Skip if CLI filter is set and doesn't match
		if opts.ProviderType != "" && provCfg.Type != opts.ProviderType {
			continue
		}
		if opts.Name != "" && provCfg.Name != opts.Name {
			continue
		}

		provider, err := s.providerRegistry.Get(provCfg, s.env)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize provider %q: %w", provCfg.Type, err)
		}
		providers = append(providers, provider)
	}
	return providers, nil
}

// Validate checks every provider before any of them touches the network and
// returns ErrValidationFailed if one of them is not usable.
func (s *DiscoveryService) Validate(providers []domain.Provider) error {
	failed := 0
	for _, provider := range providers {
		if !provider.ValidateConfiguration() {
			logger.Errorf("Invalid configuration for %s", provider)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d provider(s)", ErrValidationFailed, failed, len(providers))
	}
	return nil
}

// Discover validates and then fetches every selected provider. A provider that
// fails to fetch is logged and counted, the others still run.
func (s *DiscoveryService) Discover(
	ctx context.Context,
	cfg *config.Config,
	opts DiscoverOptions,
) (*Result, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	providers, err := s.Providers(cfg, opts)
	if err != nil {
		return nil, err
	}
	if validateErr := s.Validate(providers); validateErr != nil {
		return nil, validateErr
	}

	result := &Result{Providers: len(providers)}
	seen := make(map[string]struct{})
	for _, provider := range providers {
		logger.Infof("Fetching repositories from %s", provider)

		repos, fetchErr := provider.FetchRepositories(ctx)
		if fetchErr != nil {
			logger.Errorf("Failed to fetch repositories from %s: %v", provider.Name(), fetchErr)
			result.Errors++
			continue
		}

		logger.Infof("Found %d repositories", len(repos))
		for _, repo := range repos {
			if _, dup := seen[repo.DestinationPath]; dup {
				logger.Warnf("Skipping %s: %s is already used by another repository", repo.CloneURL, repo.DestinationPath)
				continue
			}
			seen[repo.DestinationPath] = struct{}{}
			result.Repositories = append(result.Repositories, repo)
		}
	}

	logger.Infof(
		"Discovery complete: %d providers, %d repositories, %d errors",
		result.Providers, len(result.Repositories), result.Errors,
	)
	return result, nil
}
