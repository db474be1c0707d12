package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/gitfleet/domain"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	destinationPath string
	cloneURL        string
	defaultBranch   string
	extra           map[string]string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		destinationPath: "code/test-group/test-repo",
		cloneURL:        "git@gitlab.com:test-group/test-repo.git",
		defaultBranch:   "main",
	}
}

// WithDestinationPath sets the local destination path.
func (b *RepositoryBuilder) WithDestinationPath(path string) *RepositoryBuilder {
	b.destinationPath = path
	return b
}

// WithCloneURL sets the clone URL.
func (b *RepositoryBuilder) WithCloneURL(url string) *RepositoryBuilder {
	b.cloneURL = url
	return b
}

// WithDefaultBranch sets the default branch; an empty string means none.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	return b
}

// WithExtra sets a single extra metadata entry.
func (b *RepositoryBuilder) WithExtra(key, value string) *RepositoryBuilder {
	if b.extra == nil {
		b.extra = make(map[string]string)
	}
	b.extra[key] = value
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() domain.Repository {
	return domain.NewRepository(b.destinationPath, b.cloneURL, b.defaultBranch, b.extra)
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.destinationPath = "code/test-group/test-repo"
	b.cloneURL = "git@gitlab.com:test-group/test-repo.git"
	b.defaultBranch = "main"
	b.extra = nil
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	var extra map[string]string
	if b.extra != nil {
		extra = make(map[string]string, len(b.extra))
		for k, v := range b.extra {
			extra[k] = v
		}
	}
	return &RepositoryBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		destinationPath: b.destinationPath,
		cloneURL:        b.cloneURL,
		defaultBranch:   b.defaultBranch,
		extra:           extra,
	}
}
