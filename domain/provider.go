package domain

import "context"

// Provider abstracts a source of repositories (GitLab, GitHub, Azure DevOps, etc.).
// Callers must check ValidateConfiguration before calling FetchRepositories,
// which lets several providers be validated before any network I/O happens.
type Provider interface {
	// Name returns the provider identifier (e.g. "gitlab", "github", "azuredevops").
	Name() string

	// String returns a one-line human description of what the provider targets.
	String() string

	// ValidateConfiguration checks that the credential is available and that the
	// configuration is usable. Problems are logged with instructions on how to
	// fix them; it never performs network I/O.
	ValidateConfiguration() bool

	// FetchRepositories lists the repositories of the configured namespace.
	// Either the whole listing succeeds or no repositories are returned.
	FetchRepositories(ctx context.Context) ([]Repository, error)
}

// EnvLookup reads a variable from the environment, reporting whether it was set.
// os.LookupEnv satisfies it.
type EnvLookup func(key string) (string, bool)

// MapEnv builds an EnvLookup backed by a fixed map.
func MapEnv(values map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
