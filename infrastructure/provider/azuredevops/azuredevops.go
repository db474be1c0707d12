package azuredevops

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/provider/remote"
)

const providerName = "azuredevops"

// Provider implements domain.Provider for an Azure DevOps organization.
type Provider struct {
	cfg config.ProviderConfig
	env domain.EnvLookup
	log logger.FieldLogger
}

// New creates an Azure DevOps provider. A nil env reads the process environment.
func New(cfg config.ProviderConfig, env domain.EnvLookup) domain.Provider {
	if env == nil {
		env = os.LookupEnv
	}
	return &Provider{
		cfg: cfg.WithDefaults(),
		env: env,
		log: logger.StandardLogger(),
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) String() string {
	return fmt.Sprintf(
		"Azure DevOps organization %s at %s in directory %s, using the token stored in %s",
		strings.ToLower(p.cfg.Name), p.cfg.URL, p.cfg.Path, p.cfg.EnvVar,
	)
}

func (p *Provider) ValidateConfiguration() bool {
	if _, ok := p.env(p.cfg.EnvVar); !ok {
		p.log.Errorf("%s environment variable is not defined", p.cfg.EnvVar)
		p.log.Errorf(
			"Create a personal access token with Code (Read) scope here: %s/%s/_usersSettings/tokens",
			p.cfg.URL, p.cfg.Name,
		)
		p.log.Errorf("Set an environment variable called %s with the value", p.cfg.EnvVar)
		return false
	}
	if strings.HasSuffix(p.cfg.Name, "/") {
		p.log.Errorf("Ensure that names do not end in forward slashes")
		p.log.Errorf("You specified: %s", p.cfg.Name)
		return false
	}
	return true
}

// FetchRepositories walks the projects of the organization and collects their
// enabled repositories until the cap is reached.
func (p *Provider) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	token, ok := p.env(p.cfg.EnvVar)
	if !ok {
		return nil, fmt.Errorf("%w: %s environment variable is not set", domain.ErrMissingCredential, p.cfg.EnvVar)
	}

	org := strings.ToLower(p.cfg.Name)
	c := newClient(p.cfg.URL, org, token)
	maxResults := p.cfg.MaxResults()

	var collected []domain.Repository
	continuationToken := ""
	for pages := 1; ; pages++ {
		projects, next, err := c.getProjectsPage(ctx, continuationToken)
		if err != nil {
			return nil, fmt.Errorf("projects of organization %q: %w", org, err)
		}

		for _, proj := range projects {
			repos, repoErr := c.getRepositories(ctx, proj.ID)
			if repoErr != nil {
				return nil, fmt.Errorf("repositories of project %q: %w", proj.Name, repoErr)
			}
			collected = append(collected, p.collect(org, repos)...)
			if len(collected) >= maxResults {
				return collected[:maxResults], nil
			}
		}

		if next == "" || len(projects) == 0 {
			break
		}
		if p.cfg.MaxPages > 0 && pages >= p.cfg.MaxPages {
			p.log.Warnf("Stopped listing Azure DevOps organization %q after %d page(s) (max_pages)", org, pages)
			break
		}
		continuationToken = next
	}

	return collected, nil
}

func (p *Provider) collect(org string, repos []repository) []domain.Repository {
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Name == "" || repo.RemoteURL == "" || repo.SSHURL == "" || repo.IsDisabled {
			continue
		}

		cloneURL := repo.RemoteURL
		if p.cfg.SSH() {
			cloneURL = repo.SSHURL
		}
		result = append(result, domain.NewRepository(
			remote.Destination(p.cfg.Path, path.Join(org, repo.Project.Name, repo.Name)),
			cloneURL,
			strings.TrimPrefix(repo.DefaultBranch, "refs/heads/"),
			map[string]string{"project": repo.Project.Name},
		))
	}
	return result
}
