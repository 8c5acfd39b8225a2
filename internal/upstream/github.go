package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tetarus/arch-repo-tools/internal/pkgver"
)

// defaultGitHubAPI is the production release API endpoint.
const defaultGitHubAPI = "https://api.github.com"

// errEmptyTagName is returned when the release payload carries no tag.
var errEmptyTagName = errors.New("release has no tag name")

// GitHubChecker resolves the newest release tag of a repository.
type GitHubChecker struct {
	spec    *GitHubSpec
	client  *http.Client
	baseURL string
}

// GitHubOption configures a GitHubChecker.
type GitHubOption func(*GitHubChecker)

// WithGitHubBaseURL points the checker at an alternative API endpoint.
// Used by tests to target an httptest server.
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(c *GitHubChecker) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// NewGitHubChecker creates a checker for the provided spec.
func NewGitHubChecker(spec *GitHubSpec, client *http.Client, opts ...GitHubOption) *GitHubChecker {
	checker := &GitHubChecker{
		spec:    spec,
		client:  client,
		baseURL: defaultGitHubAPI,
	}

	for _, opt := range opts {
		opt(checker)
	}

	return checker
}

// Latest fetches the latest-release resource and returns the normalized tag.
// A prerelease under only_stable reports ErrNoUpdate rather than a failure.
func (c *GitHubChecker) Latest(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.spec.Repo)

	body, err := get(ctx, c.client, url, "application/json")
	if err != nil {
		return "", err
	}

	var release struct {
		TagName    string `json:"tag_name"`
		Prerelease bool   `json:"prerelease"`
	}

	if err = json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("decode release for %s: %w", c.spec.Repo, err)
	}

	if release.TagName == "" {
		return "", fmt.Errorf("%s: %w", c.spec.Repo, errEmptyTagName)
	}

	if release.Prerelease && c.spec.OnlyStable {
		return "", fmt.Errorf("prerelease %s: %w", release.TagName, ErrNoUpdate)
	}

	return pkgver.Normalize(release.TagName, c.spec.TagPrefix), nil
}
