package azuredevops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rios0rios0/gitfleet/domain"
)

const apiVersion = "7.0"

// client is a minimal Azure DevOps REST client covering project and repository listing.
type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newClient(instanceURL, organization, token string) *client {
	return &client{
		baseURL: strings.TrimSuffix(instanceURL, "/") + "/" + url.PathEscape(organization),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// project represents an Azure DevOps project.
type project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// repository represents an Azure DevOps Git repository.
type repository struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RemoteURL     string  `json:"remoteUrl"`
	SSHURL        string  `json:"sshUrl"`
	DefaultBranch string  `json:"defaultBranch"`
	IsDisabled    bool    `json:"isDisabled"`
	Project       project `json:"project"`
}

// getProjectsPage returns one page of projects and the continuation token of the next one.
func (c *client) getProjectsPage(ctx context.Context, continuationToken string) ([]project, string, error) {
	endpoint := "/_apis/projects?api-version=" + apiVersion
	if continuationToken != "" {
		endpoint += "&continuationToken=" + url.QueryEscape(continuationToken)
	}

	body, headers, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, "", err
	}

	var result struct {
		Value []project `json:"value"`
		Count int       `json:"count"`
	}
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
		return nil, "", fmt.Errorf("%w: failed to parse projects response: %w", domain.ErrRemoteDecodeFailed, unmarshalErr)
	}

	return result.Value, headers.Get("x-ms-continuationtoken"), nil
}

// getRepositories returns all repositories in a project.
func (c *client) getRepositories(ctx context.Context, projectID string) ([]repository, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories?api-version=%s", url.PathEscape(projectID), apiVersion)

	body, _, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []repository `json:"value"`
		Count int          `json:"count"`
	}
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: failed to parse repositories response: %w", domain.ErrRemoteDecodeFailed, unmarshalErr)
	}

	return result.Value, nil
}

func (c *client) doRequest(ctx context.Context, endpoint string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrRemoteRequestFailed, err)
	}

	// Basic auth with an empty user and the PAT as password
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: request failed: %w", domain.ErrRemoteRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrRemoteRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf(
			"%w: API error (status %d): %s",
			domain.ErrRemoteRequestFailed, resp.StatusCode, string(respBody),
		)
	}

	return respBody, resp.Header, nil
}
