package lockfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/lockfile"
	"github.com/rios0rios0/gitfleet/test/domain/entitybuilders"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("should write repositories sorted by destination", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "nested", lockfile.DefaultName)
		repos := []domain.Repository{
			entitybuilders.NewRepositoryBuilder().
				WithDestinationPath("code/b").
				WithCloneURL("git@gitlab.com:acme/b.git").
				BuildRepository(),
			entitybuilders.NewRepositoryBuilder().
				WithDestinationPath("code/a").
				WithCloneURL("git@gitlab.com:acme/a.git").
				WithDefaultBranch("").
				BuildRepository(),
		}

		// when
		err := lockfile.Write(path, repos)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		content := string(data)
		assert.Less(t, strings.Index(content, "path: code/a"), strings.Index(content, "path: code/b"))
		assert.Equal(t, 1, strings.Count(content, "branch: main"))
		assert.NotContains(t, content, "extra:")
	})

	t.Run("should read back what was written", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), lockfile.DefaultName)
		repo := entitybuilders.NewRepositoryBuilder().WithExtra("project", "infra").BuildRepository()
		require.NoError(t, lockfile.Write(path, []domain.Repository{repo}))

		// when
		repos, err := lockfile.Read(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []domain.Repository{repo}, repos)
	})

	t.Run("should fail to read a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := lockfile.Read(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read lock file")
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("should report added and removed destinations", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewRepositoryBuilder()
		previous := []domain.Repository{
			builder.WithDestinationPath("code/a").BuildRepository(),
			builder.WithDestinationPath("code/b").BuildRepository(),
		}
		current := []domain.Repository{
			builder.WithDestinationPath("code/b").BuildRepository(),
			builder.WithDestinationPath("code/c").BuildRepository(),
		}

		// when
		added, removed := lockfile.Diff(previous, current)

		// then
		assert.Equal(t, []string{"code/c"}, added)
		assert.Equal(t, []string{"code/a"}, removed)
	})
}
