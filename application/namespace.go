package application

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
)

const (
	providerGitHub      = "github"
	providerAzureDevOps = "azuredevops"
	providerGitLab      = "gitlab"
)

// ParseNamespaceURL turns the web address of a group, user or organization
// into a provider entry. Public hosts are detected from the hostname; any
// other host needs providerType to be set.
//
//	https://gitlab.com/{group}[/{subgroup}...]
//	https://github.com/{org}
//	https://dev.azure.com/{org}
//	https://{self-hosted}/{group}   (providerType required)
func ParseNamespaceURL(rawURL, providerType string) (config.ProviderConfig, error) {
	parsed, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(rawURL), ".git"))
	if err != nil || parsed.Host == "" {
		return config.ProviderConfig{}, fmt.Errorf(
			"%w: %q is not an absolute namespace URL", domain.ErrInvalidConfiguration, rawURL,
		)
	}

	host := strings.ToLower(parsed.Hostname())
	detected := detectProviderType(host)
	if providerType == "" {
		providerType = detected
	}
	if providerType == "" {
		return config.ProviderConfig{}, fmt.Errorf(
			"%w: cannot tell the provider type of %s, pass --type", domain.ErrInvalidConfiguration, host,
		)
	}

	name := strings.Trim(parsed.Path, "/")
	if name == "" {
		return config.ProviderConfig{}, fmt.Errorf(
			"%w: %q does not name a group, user or organization", domain.ErrInvalidConfiguration, rawURL,
		)
	}

	// the API root only needs to be spelled out for self-hosted instances
	instance := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	entry := config.ProviderConfig{Type: providerType, Name: name}
	switch providerType {
	case providerGitHub:
		entry.Name = strings.SplitN(name, "/", 2)[0] //nolint:mnd // org/repo
		if detected != providerGitHub {
			entry.URL = instance + "/api/v3"
		}
	case providerAzureDevOps:
		// https://dev.azure.com/{org}/{project}/... only the org is a namespace
		entry.Name = strings.SplitN(name, "/", 2)[0] //nolint:mnd // org/project
		if detected != providerAzureDevOps {
			entry.URL = instance
		}
	case providerGitLab:
		if detected != providerGitLab {
			entry.URL = instance
		}
	default:
		return config.ProviderConfig{}, fmt.Errorf(
			"%w: unsupported provider type %q", domain.ErrInvalidConfiguration, providerType,
		)
	}

	return entry, nil
}

func detectProviderType(host string) string {
	switch {
	case host == "dev.azure.com":
		return providerAzureDevOps
	case host == "github.com" || host == "api.github.com":
		return providerGitHub
	case host == "gitlab.com":
		return providerGitLab
	default:
		return ""
	}
}
