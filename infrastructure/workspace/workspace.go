// Package workspace inspects the local side of a discovery run: which
// destinations already hold a clone and which transport each URL uses.
package workspace

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	gitops "github.com/rios0rios0/gitforge/pkg/git/infrastructure"
	globalEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitfleet/domain"
)

// Status describes one discovered repository against the local disk.
type Status struct {
	Repository domain.Repository
	Cloned     bool
	Protocol   string
	Host       string
	Forge      string // "gitlab", "github", "azuredevops" or empty for hosts that are not recognized
	Namespace  string // group, owner or organization/project the URL belongs to
}

//nolint:gochecknoglobals // read-only lookup table
var forgeNames = map[globalEntities.ServiceType]string{
	globalEntities.GITHUB:      "github",
	globalEntities.GITLAB:      "gitlab",
	globalEntities.AZUREDEVOPS: "azuredevops",
}

// IsCloned reports whether path is the root of an existing git repository.
func IsCloned(path string) bool {
	_, err := git.PlainOpen(path)
	if err == nil {
		return true
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		logger.Debugf("Could not open %s as a git repository: %v", path, err)
	}
	return false
}

// Forge resolves which forge a clone URL points to and the namespace it
// belongs to. Self-hosted instances that cannot be told apart by hostname
// return empty strings.
func Forge(cloneURL string) (string, string) {
	info, err := gitops.ParseRemoteURL(cloneURL)
	if err != nil {
		return "", ""
	}
	name, ok := forgeNames[info.ServiceType]
	if !ok {
		return "", ""
	}
	if info.Project != "" {
		return name, info.Organization + "/" + info.Project
	}
	return name, info.Organization
}

// Inspect resolves the status of every repository, keeping the input order.
func Inspect(repos []domain.Repository) ([]Status, error) {
	statuses := make([]Status, 0, len(repos))
	for _, repo := range repos {
		endpoint, err := repo.Endpoint()
		if err != nil {
			return nil, fmt.Errorf("invalid clone URL %q for %s: %w", repo.CloneURL, repo.DestinationPath, err)
		}
		forge, namespace := Forge(repo.CloneURL)
		statuses = append(statuses, Status{
			Repository: repo,
			Cloned:     IsCloned(repo.DestinationPath),
			Protocol:   endpoint.Protocol,
			Host:       endpoint.Host,
			Forge:      forge,
			Namespace:  namespace,
		})
	}
	return statuses, nil
}
