// Package lockfile persists the repositories found by a discovery run so that
// the clone executor and later runs can tell what changed.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitfleet/domain"
)

// DefaultName is the lock file name written next to the configuration.
const DefaultName = "workspace-lock.yaml"

type entry struct {
	Path   string            `yaml:"path"`
	URL    string            `yaml:"url"`
	Branch string            `yaml:"branch,omitempty"`
	Extra  map[string]string `yaml:"extra,omitempty"`
}

type document struct {
	Repositories []entry `yaml:"repositories"`
}

// Write stores the repositories sorted by destination path. The file is
// replaced atomically.
func Write(path string, repos []domain.Repository) error {
	doc := document{Repositories: make([]entry, 0, len(repos))}
	for _, repo := range repos {
		doc.Repositories = append(doc.Repositories, entry{
			Path:   repo.DestinationPath,
			URL:    repo.CloneURL,
			Branch: repo.DefaultBranch,
			Extra:  repo.Extra,
		})
	}
	sort.Slice(doc.Repositories, func(i, j int) bool {
		return doc.Repositories[i].Path < doc.Repositories[j].Path
	})

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode lock file: %w", err)
	}

	dir := filepath.Dir(path)
	if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, mkdirErr)
	}

	tmp, err := os.CreateTemp(dir, ".lock-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary lock file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("failed to write lock file: %w", closeErr)
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		return fmt.Errorf("failed to replace lock file %q: %w", path, renameErr)
	}
	return nil
}

// Read loads a lock file written by Write.
func Read(path string) ([]domain.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %q: %w", path, err)
	}

	var doc document
	if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse lock file %q: %w", path, unmarshalErr)
	}

	repos := make([]domain.Repository, 0, len(doc.Repositories))
	for _, e := range doc.Repositories {
		repos = append(repos, domain.NewRepository(e.Path, e.URL, e.Branch, e.Extra))
	}
	return repos, nil
}

// Diff compares a previous lock with a fresh discovery and returns the
// destinations that appeared and disappeared.
func Diff(previous, current []domain.Repository) ([]string, []string) {
	before := make(map[string]struct{}, len(previous))
	for _, repo := range previous {
		before[repo.DestinationPath] = struct{}{}
	}
	after := make(map[string]struct{}, len(current))
	for _, repo := range current {
		after[repo.DestinationPath] = struct{}{}
	}

	var added, removed []string
	for path := range after {
		if _, ok := before[path]; !ok {
			added = append(added, path)
		}
	}
	for path := range before {
		if _, ok := after[path]; !ok {
			removed = append(removed, path)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
