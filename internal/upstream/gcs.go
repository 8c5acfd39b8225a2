package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/tetarus/arch-repo-tools/internal/pkgver"
)

// errEmptyVersionBody is returned when the version endpoint yields only whitespace.
var errEmptyVersionBody = errors.New("version endpoint returned empty body")

// GCSChecker reads the plain-text latest-version object of a bucket.
type GCSChecker struct {
	spec   *GCSSpec
	client *http.Client
}

// NewGCSChecker creates a checker for the provided spec.
func NewGCSChecker(spec *GCSSpec, client *http.Client) *GCSChecker {
	return &GCSChecker{
		spec:   spec,
		client: client,
	}
}

// Latest fetches the version endpoint and returns the trimmed, normalized body.
func (c *GCSChecker) Latest(ctx context.Context) (string, error) {
	endpoint, err := url.Parse(c.spec.BucketURL)
	if err != nil {
		return "", fmt.Errorf("parse bucket URL: %w", err)
	}

	endpoint.Path = path.Join(endpoint.Path, c.spec.VersionEndpoint)

	body, err := get(ctx, c.client, endpoint.String(), "")
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", fmt.Errorf("%s: %w", endpoint, errEmptyVersionBody)
	}

	return pkgver.Normalize(raw, ""), nil
}
