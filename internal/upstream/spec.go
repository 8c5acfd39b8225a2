package upstream

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies the distribution mechanism a package is fetched from.
type Kind string

const (
	// KindGitHub marks packages released through the GitHub release API.
	KindGitHub Kind = "github"
	// KindGCS marks packages published to a Google Cloud Storage bucket.
	KindGCS Kind = "gcs"
)

var (
	// ErrUnsupportedType is returned when an upstream kind has no checker
	// or recipe template associated with it.
	ErrUnsupportedType = errors.New("unsupported upstream type")

	// errVariantMissing is returned when a spec's kind and its variant
	// fields disagree (should not happen for configs loaded from YAML).
	errVariantMissing = errors.New("upstream variant fields missing")
)

// GitHubSpec describes a GitHub-released upstream.
type GitHubSpec struct {
	// Repo is the "owner/name" repository slug.
	Repo string `yaml:"repo"`
	// TagPrefix is stripped from tag names before normalization.
	TagPrefix string `yaml:"tag_prefix"`
	// AssetPattern is matched as a substring against release asset names.
	AssetPattern string `yaml:"asset_pattern"`
	// OnlyStable makes prereleases count as "no update available".
	OnlyStable bool `yaml:"only_stable"`
}

// GCSSpec describes an upstream published to a storage bucket.
type GCSSpec struct {
	// BucketURL is the public base URL of the bucket.
	BucketURL string `yaml:"bucket_url"`
	// PlatformName selects the artifact and manifest entry to use.
	PlatformName string `yaml:"platform_name"`
	// VersionEndpoint is the bucket-relative path of the plain-text
	// latest-version object.
	VersionEndpoint string `yaml:"version_endpoint"`
	// ChecksumVerification makes the generated recipe verify the binary
	// against the release manifest digest.
	ChecksumVerification bool `yaml:"checksum_verification"`
}

// Spec is the tagged union over upstream kinds. Exactly one variant is set
// for the kinds this toolkit knows; unknown kinds keep their raw tag so that
// callers can skip the package with a clear error instead of failing the
// whole config load.
type Spec struct {
	Kind   Kind
	GitHub *GitHubSpec
	GCS    *GCSSpec
}

// UnmarshalYAML decodes the `type`-tagged mapping into the matching variant.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}

	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("decode upstream type: %w", err)
	}

	s.Kind = Kind(head.Type)
	s.GitHub = nil
	s.GCS = nil

	switch s.Kind {
	case KindGitHub:
		// Stable-only is the default; the YAML key overrides it.
		github := GitHubSpec{OnlyStable: true}
		if err := node.Decode(&github); err != nil {
			return fmt.Errorf("decode github upstream: %w", err)
		}

		s.GitHub = &github
	case KindGCS:
		var gcs GCSSpec
		if err := node.Decode(&gcs); err != nil {
			return fmt.Errorf("decode gcs upstream: %w", err)
		}

		s.GCS = &gcs
	}

	return nil
}

// Validate checks that the variant carries the fields its kind requires.
func (s *Spec) Validate() error {
	switch s.Kind {
	case KindGitHub:
		if s.GitHub == nil {
			return errVariantMissing
		}

		if s.GitHub.Repo == "" {
			return errors.New("github upstream requires repo")
		}
	case KindGCS:
		if s.GCS == nil {
			return errVariantMissing
		}

		if s.GCS.BucketURL == "" || s.GCS.PlatformName == "" || s.GCS.VersionEndpoint == "" {
			return errors.New("gcs upstream requires bucket_url, platform_name and version_endpoint")
		}
	default:
		return fmt.Errorf("%q: %w", string(s.Kind), ErrUnsupportedType)
	}

	return nil
}
