package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/provider/remote"
)

const (
	providerName = "github"
	publicAPIURL = "https://api.github.com"
	perPage      = 100
)

// Provider implements domain.Provider for a GitHub organization or user.
type Provider struct {
	cfg config.ProviderConfig
	env domain.EnvLookup
	log logger.FieldLogger
}

// New creates a GitHub provider. A nil env reads the process environment.
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
		"GitHub organization/user %s at %s in directory %s, using the token stored in %s",
		strings.ToLower(p.cfg.Name), p.cfg.URL, p.cfg.Path, p.cfg.EnvVar,
	)
}

func (p *Provider) ValidateConfiguration() bool {
	if _, ok := p.env(p.cfg.EnvVar); !ok {
		p.log.Errorf("%s environment variable is not defined", p.cfg.EnvVar)
		p.log.Errorf("Create a personal access token here: https://github.com/settings/tokens")
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

// FetchRepositories lists the non-archived repositories of the organization,
// falling back to the user of the same name when no such organization exists.
func (p *Provider) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	token, ok := p.env(p.cfg.EnvVar)
	if !ok {
		return nil, fmt.Errorf("%w: %s environment variable is not set", domain.ErrMissingCredential, p.cfg.EnvVar)
	}

	client, err := p.newClient(token)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create github client: %w", domain.ErrRemoteRequestFailed, err)
	}

	owner := strings.ToLower(p.cfg.Name)
	maxResults := p.cfg.MaxResults()
	listPage := p.orgLister(client, owner)

	var collected []domain.Repository
	opts := gh.ListOptions{PerPage: perPage, Page: 1}
	for pages := 1; ; pages++ {
		repos, resp, listErr := listPage(ctx, opts)
		if listErr != nil && pages == 1 && isNotFound(listErr) {
			p.log.Debugf("No GitHub organization %q, listing the user instead", owner)
			listPage = p.userLister(client, owner)
			repos, resp, listErr = listPage(ctx, opts)
		}
		if listErr != nil {
			return nil, remote.Classify(fmt.Sprintf("repositories of %q", owner), listErr)
		}
		if len(repos) == 0 {
			break
		}

		collected = append(collected, p.collect(repos)...)
		if len(collected) >= maxResults {
			break
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		if p.cfg.MaxPages > 0 && pages >= p.cfg.MaxPages {
			p.log.Warnf("Stopped listing GitHub owner %q after %d page(s) (max_pages)", owner, pages)
			break
		}
		opts.Page = resp.NextPage
	}

	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}
	return collected, nil
}

type pageLister func(ctx context.Context, opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error)

func (p *Provider) orgLister(client *gh.Client, org string) pageLister {
	return func(ctx context.Context, opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return client.Repositories.ListByOrg(ctx, org, &gh.RepositoryListByOrgOptions{ListOptions: opts})
	}
}

func (p *Provider) userLister(client *gh.Client, user string) pageLister {
	return func(ctx context.Context, opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return client.Repositories.ListByUser(ctx, user, &gh.RepositoryListByUserOptions{
			Type:        "owner",
			ListOptions: opts,
		})
	}
}

func (p *Provider) newClient(token string) (*gh.Client, error) {
	client := gh.NewClient(nil).WithAuthToken(token)
	if p.cfg.URL == "" || p.cfg.URL == publicAPIURL {
		return client, nil
	}
	return client.WithEnterpriseURLs(p.cfg.URL, p.cfg.URL)
}

func (p *Provider) collect(repos []*gh.Repository) []domain.Repository {
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo == nil || repo.GetFullName() == "" ||
			repo.GetSSHURL() == "" || repo.GetCloneURL() == "" {
			continue
		}
		if repo.GetArchived() || repo.GetDisabled() {
			continue
		}

		cloneURL := repo.GetCloneURL()
		if p.cfg.SSH() {
			cloneURL = repo.GetSSHURL()
		}
		result = append(result, domain.NewRepository(
			remote.Destination(p.cfg.Path, repo.GetFullName()),
			cloneURL,
			repo.GetDefaultBranch(),
			nil,
		))
	}
	return result
}

func isNotFound(err error) bool {
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}
