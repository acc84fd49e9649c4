package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/skillpath-backend/internal/logger"
)

// Client is a thin wrapper over the GitHub REST API, scoped to what the
// evidence extractor needs: the caller's repositories and their
// per-language byte counts.
type Client interface {
	ListRepositories(ctx context.Context, accessToken string) ([]Repository, error)
	ListLanguages(ctx context.Context, accessToken, fullName string) (map[string]int64, error)
}

type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type client struct {
	log     *logger.Logger
	baseURL string
	httpc   *http.Client
}

func NewClient(log *logger.Logger, baseURL string) Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &client{
		log:     log.With("client", "GithubClient"),
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) ListRepositories(ctx context.Context, accessToken string) ([]Repository, error) {
	var repos []Repository
	if err := c.getJSON(ctx, accessToken, "/user/repos?per_page=100", &repos); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	return repos, nil
}

func (c *client) ListLanguages(ctx context.Context, accessToken, fullName string) (map[string]int64, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository name %q", fullName)
	}
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(name))
	var languages map[string]int64
	if err := c.getJSON(ctx, accessToken, path, &languages); err != nil {
		return nil, fmt.Errorf("list languages for %s: %w", fullName, err)
	}
	return languages, nil
}

func (c *client) getJSON(ctx context.Context, accessToken, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github responded %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
