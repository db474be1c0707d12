package domain

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Repository is a remote repository discovered by a Provider, ready to be
// handed to a clone executor.
type Repository struct {
	DestinationPath string            // Local path the repository is cloned into
	CloneURL        string            // SSH or HTTP(S) URL, as reported by the forge
	DefaultBranch   string            // Empty when the forge reports none
	Extra           map[string]string // Provider-specific metadata, nil for most providers
}

// NewRepository creates a repository record. The extra metadata map is copied
// so the caller cannot mutate the record afterwards.
func NewRepository(destination, cloneURL, defaultBranch string, extra map[string]string) Repository {
	var copied map[string]string
	if extra != nil {
		copied = make(map[string]string, len(extra))
		for k, v := range extra {
			copied[k] = v
		}
	}
	return Repository{
		DestinationPath: destination,
		CloneURL:        cloneURL,
		DefaultBranch:   defaultBranch,
		Extra:           copied,
	}
}

// HasDefaultBranch reports whether the forge reported a default branch.
func (r Repository) HasDefaultBranch() bool {
	return r.DefaultBranch != ""
}

// Endpoint parses the clone URL, accepting scp-like SSH addresses
// (git@host:group/repo.git) as well as full URLs.
func (r Repository) Endpoint() (*transport.Endpoint, error) {
	return transport.NewEndpoint(r.CloneURL)
}
