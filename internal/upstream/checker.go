package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultRequestTimeout bounds every upstream request; there are no retries.
	DefaultRequestTimeout = 30 * time.Second

	// userAgent identifies the toolkit to upstream APIs.
	userAgent = "Arch-Repo-Bot/1.0 (+https://github.com/tetarus/arch-repo)"
)

var (
	// ErrNoUpdate signals that the upstream answered but offers nothing to
	// pick up (e.g. the latest release is a prerelease). It is distinct from
	// a failed check.
	ErrNoUpdate = errors.New("no update available")

	// errBadHTTPStatus is returned for responses outside the 2xx range.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// Checker reports the latest upstream version in canonical form.
type Checker interface {
	Latest(ctx context.Context) (string, error)
}

// NewChecker builds the checker matching the spec's kind.
// Unknown kinds yield ErrUnsupportedType so callers can skip the package.
//
//nolint:ireturn // Dispatching over upstream kinds is the point of this factory.
func NewChecker(spec *Spec, client *http.Client) (Checker, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if client == nil {
		client = NewHTTPClient()
	}

	switch spec.Kind {
	case KindGitHub:
		return NewGitHubChecker(spec.GitHub, client), nil
	case KindGCS:
		return NewGCSChecker(spec.GCS, client), nil
	default:
		return nil, fmt.Errorf("%q: %w", string(spec.Kind), ErrUnsupportedType)
	}
}

// NewHTTPClient returns the client used for upstream checks: plain transport
// with a fixed per-request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultRequestTimeout}
}

// get performs a GET with the toolkit's User-Agent and reads the full body.
// Non-2xx responses are errors.
func get(ctx context.Context, client *http.Client, url, accept string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	request.Header.Set("User-Agent", userAgent)

	if accept != "" {
		request.Header.Set("Accept", accept)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s: %s: %w", url, response.Status, errBadHTTPStatus)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return body, nil
}
