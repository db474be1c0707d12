package azuredevops //nolint:testpackage // tests unexported functions

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitfleet/config"
	"github.com/rios0rios0/gitfleet/domain"
)

const testToken = "ado-pat"

func repoJSON(project, name string, disabled bool) string {
	return fmt.Sprintf(`{
		"id": "%[2]s-id",
		"name": "%[2]s",
		"remoteUrl": "https://dev.azure.com/contoso/%[1]s/_git/%[2]s",
		"sshUrl": "git@ssh.dev.azure.com:v3/contoso/%[1]s/%[2]s",
		"defaultBranch": "refs/heads/main",
		"isDisabled": %[3]t,
		"project": {"id": "%[1]s-id", "name": "%[1]s"}
	}`, project, name, disabled)
}

type fakeAzure struct {
	mu       sync.Mutex
	requests []string
	auth     string
	status   int
}

func (f *fakeAzure) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.URL.Path)
	f.auth = r.Header.Get("Authorization")

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = fmt.Fprint(w, `{"message":"denied"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/contoso/_apis/projects":
		if r.URL.Query().Get("continuationToken") == "" {
			w.Header().Set("x-ms-continuationtoken", "next-page")
			_, _ = fmt.Fprint(w, `{"count":1,"value":[{"id":"infra-id","name":"infra"}]}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"count":1,"value":[{"id":"apps-id","name":"apps"}]}`)
	case "/contoso/infra-id/_apis/git/repositories":
		_, _ = fmt.Fprintf(w, `{"count":2,"value":[%s,%s]}`,
			repoJSON("infra", "network", false), repoJSON("infra", "legacy", true))
	case "/contoso/apps-id/_apis/git/repositories":
		_, _ = fmt.Fprintf(w, `{"count":2,"value":[%s,%s]}`,
			repoJSON("apps", "web", false), repoJSON("apps", "api", false))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAzure) recorded() ([]string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...), f.auth
}

func newTestProvider(t *testing.T, fake *fakeAzure, mutate func(cfg *config.ProviderConfig)) *Provider {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.ProviderConfig{Type: "azuredevops", Name: "Contoso", URL: srv.URL, Path: "ado"}
	if mutate != nil {
		mutate(&cfg)
	}
	p := New(cfg, domain.MapEnv(map[string]string{"AZURE_DEVOPS_TOKEN": testToken})).(*Provider)
	log, _ := logtest.NewNullLogger()
	p.log = log
	return p
}

func TestAzureDevOpsProvider(t *testing.T) {
	t.Parallel()

	t.Run("should walk every project page and skip disabled repositories", func(t *testing.T) {
		t.Parallel()

		// given
		fake := &fakeAzure{}
		p := newTestProvider(t, fake, nil)

		// when
		repos, err := p.FetchRepositories(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, repos, 3)
		assert.Equal(t, "ado/contoso/infra/network", repos[0].DestinationPath)
		assert.Equal(t, "git@ssh.dev.azure.com:v3/contoso/infra/network", repos[0].CloneURL)
		assert.Equal(t, "main", repos[0].DefaultBranch)
		assert.Equal(t, "infra", repos[0].Extra["project"])
		assert.Equal(t, "ado/contoso/apps/web", repos[1].DestinationPath)

		_, auth := fake.recorded()
		assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte(":"+testToken)), auth)
	})

	t.Run("should stop requesting projects once the cap is reached", func(t *testing.T) {
		t.Parallel()

		// given
		fake := &fakeAzure{}
		p := newTestProvider(t, fake, func(cfg *config.ProviderConfig) { cfg.Max = intPtr(1) })

		// when
		repos, err := p.FetchRepositories(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, repos, 1)
		requests, _ := fake.recorded()
		assert.Equal(t, []string{"/contoso/_apis/projects", "/contoso/infra-id/_apis/git/repositories"}, requests)
	})

	t.Run("should use HTTPS remote URLs when ssh is disabled", func(t *testing.T) {
		t.Parallel()

		// given
		p := newTestProvider(t, &fakeAzure{}, func(cfg *config.ProviderConfig) { cfg.UseSSH = boolPtr(false) })

		// when
		repos, err := p.FetchRepositories(context.Background())

		// then
		require.NoError(t, err)
		require.NotEmpty(t, repos)
		assert.Equal(t, "https://dev.azure.com/contoso/infra/_git/network", repos[0].CloneURL)
	})

	t.Run("should fail with a request error on a non-success status", func(t *testing.T) {
		t.Parallel()

		// given
		p := newTestProvider(t, &fakeAzure{status: http.StatusUnauthorized}, nil)

		// when
		repos, err := p.FetchRepositories(context.Background())

		// then
		require.ErrorIs(t, err, domain.ErrRemoteRequestFailed)
		assert.Nil(t, repos)
	})

	t.Run("should fail with a missing credential error", func(t *testing.T) {
		t.Parallel()

		// given
		p := New(config.ProviderConfig{Type: "azuredevops", Name: "contoso", Path: "ado"}, domain.MapEnv(nil))

		// when
		_, err := p.FetchRepositories(context.Background())

		// then
		require.ErrorIs(t, err, domain.ErrMissingCredential)
	})

	t.Run("should reject a name with a trailing slash", func(t *testing.T) {
		t.Parallel()

		// given
		p := newTestProvider(t, &fakeAzure{}, func(cfg *config.ProviderConfig) { cfg.Name = "contoso/" })

		// when
		ok := p.ValidateConfiguration()

		// then
		assert.False(t, ok)
	})
}

func TestAzureDevOpsClient(t *testing.T) {
	t.Parallel()

	t.Run("should report undecodable bodies as decode failures", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, `not json`)
		}))
		t.Cleanup(srv.Close)
		c := newClient(srv.URL, "contoso", testToken)

		// when
		_, _, err := c.getProjectsPage(context.Background(), "")

		// then
		require.ErrorIs(t, err, domain.ErrRemoteDecodeFailed)
	})
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
