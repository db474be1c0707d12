package gitlab

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/provider/remote"
)

const providerName = "gitlab"

// Provider implements domain.Provider for a GitLab group or namespace,
// on gitlab.com or on a self-hosted instance.
type Provider struct {
	cfg config.ProviderConfig
	env domain.EnvLookup
	log logger.FieldLogger
}

// projectNode is one usable entry of a listing page.
type projectNode struct {
	archived      bool
	fullPath      string
	cloneURL      string
	defaultBranch string
}

// New creates a GitLab provider. A nil env reads the process environment.
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
		"GitLab user/group %s at %s in directory %s, using the token stored in %s",
		strings.ToLower(p.cfg.Name), p.cfg.URL, p.cfg.Path, p.cfg.EnvVar,
	)
}

// ValidateConfiguration checks that the token variable is set and that the
// group name does not end with a slash.
func (p *Provider) ValidateConfiguration() bool {
	if _, ok := p.env(p.cfg.EnvVar); !ok {
		p.log.Errorf("%s environment variable is not defined", p.cfg.EnvVar)
		p.log.Errorf("Create a personal access token here: %s/-/user_settings/personal_access_tokens", p.cfg.URL)
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

// FetchRepositories lists the non-archived projects of the group page by page,
// until a page comes back empty or enough projects were collected.
func (p *Provider) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	token, ok := p.env(p.cfg.EnvVar)
	if !ok {
		return nil, fmt.Errorf("%w: %s environment variable is not set", domain.ErrMissingCredential, p.cfg.EnvVar)
	}

	client, err := gl.NewClient(token, gl.WithBaseURL(p.cfg.URL), gl.WithCustomRetryMax(0))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gitlab client: %w", domain.ErrRemoteRequestFailed, err)
	}

	group := strings.ToLower(p.cfg.Name)
	maxResults := p.cfg.MaxResults()

	var nodes []projectNode
	opts := &gl.ListGroupProjectsOptions{}
	opts.Page = 1
	for pages := 1; ; pages++ {
		p.log.Debugf("Fetching page %d of GitLab group %q", opts.Page, group)

		projects, _, listErr := client.Groups.ListGroupProjects(group, opts, gl.WithContext(ctx))
		if listErr != nil {
			return nil, remote.Classify(fmt.Sprintf("projects of group %q", group), listErr)
		}
		// client-go leaves the slice nil for a JSON null body, an empty array is non-nil.
		if projects == nil {
			return nil, fmt.Errorf(
				"%w: projects of group %q: page %d is not a list", domain.ErrRemoteDecodeFailed, group, opts.Page,
			)
		}

		// GitLab does not offer cursor pagination here, an empty page ends the listing.
		if len(projects) == 0 {
			break
		}

		collected, collectErr := p.collect(projects)
		if collectErr != nil {
			return nil, fmt.Errorf("%w: projects of group %q: %w", domain.ErrRemoteDecodeFailed, group, collectErr)
		}
		nodes = append(nodes, collected...)
		if len(nodes) >= maxResults {
			break
		}

		if p.cfg.MaxPages > 0 && pages >= p.cfg.MaxPages {
			p.log.Warnf("Stopped listing GitLab group %q after %d page(s) (max_pages)", group, pages)
			break
		}
		opts.Page++
	}

	// A single page may overshoot the remaining budget.
	if len(nodes) > maxResults {
		nodes = nodes[:maxResults]
	}

	return p.toRepositories(nodes), nil
}

// collect keeps the entries that carry a path and both clone URLs and are not archived.
// A null entry makes the whole page unusable.
func (p *Provider) collect(projects []*gl.Project) ([]projectNode, error) {
	nodes := make([]projectNode, 0, len(projects))
	for i, proj := range projects {
		if proj == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
		if proj.PathWithNamespace == "" ||
			proj.SSHURLToRepo == "" || proj.HTTPURLToRepo == "" {
			continue
		}
		if proj.Archived {
			continue
		}

		cloneURL := proj.HTTPURLToRepo
		if p.cfg.SSH() {
			cloneURL = proj.SSHURLToRepo
		}
		nodes = append(nodes, projectNode{
			archived:      proj.Archived,
			fullPath:      proj.PathWithNamespace,
			cloneURL:      cloneURL,
			defaultBranch: proj.DefaultBranch,
		})
	}
	return nodes, nil
}

func (p *Provider) toRepositories(nodes []projectNode) []domain.Repository {
	repos := make([]domain.Repository, 0, len(nodes))
	for _, node := range nodes {
		// Archived projects are already dropped by collect; this keeps it that way
		// whatever collect turns into.
		if node.archived {
			continue
		}
		repos = append(repos, domain.NewRepository(
			remote.Destination(p.cfg.Path, node.fullPath),
			node.cloneURL,
			node.defaultBranch,
			nil,
		))
	}
	return repos
}
