package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetarus/arch-repo-tools/internal/upstream"
)

const sampleConfig = `# tracked packages
packages:
  codex:
    version: 1.2.3
    pkgrel: 4
    description: Example CLI
    url: https://github.com/owner/codex
    license: MIT
    architectures:
      - x86_64
    depends:
      - glibc
    upstream:
      type: github
      repo: owner/codex
      tag_prefix: codex-
      asset_pattern: linux-x86_64
  cloudtool:
    version: 0.50.0
    pkgrel: 1
    description: Bucket-released tool
    url: https://example.com/cloudtool
    license: custom
    architectures:
      - x86_64
    upstream:
      type: gcs
      bucket_url: https://storage.googleapis.com/cloudtool
      platform_name: linux-amd64
      version_endpoint: latest.txt
      checksum_verification: true
`

func writeSample(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

// TestLoad parses the sample file into an ordered typed view.
func TestLoad(t *testing.T) {
	t.Parallel()

	file, err := Load(writeSample(t, sampleConfig))
	require.NoError(t, err)
	require.Len(t, file.Packages, 2)

	// File order is preserved.
	require.Equal(t, "codex", file.Packages[0].Name)
	require.Equal(t, "cloudtool", file.Packages[1].Name)

	codex := file.Package("codex")
	require.NotNil(t, codex)
	require.Equal(t, "1.2.3", codex.Version)
	require.Equal(t, 4, codex.Release)
	require.Equal(t, upstream.KindGitHub, codex.Upstream.Kind)
	require.Equal(t, []string{"glibc"}, codex.Depends)
	require.Empty(t, codex.Provides)

	cloudtool := file.Package("cloudtool")
	require.Equal(t, upstream.KindGCS, cloudtool.Upstream.Kind)
	require.True(t, cloudtool.Upstream.GCS.ChecksumVerification)
}

// TestLoad_Failures covers missing files, bad YAML, and duplicate names.
func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeSample(t, "packages: [not: a: mapping"))
	require.Error(t, err)

	_, err = Load(writeSample(t, "packages:\n  - a\n  - b\n"))
	require.ErrorIs(t, err, errNotAMapping)
}

// TestSetVersion_ResetsRelease checks that a version change resets pkgrel to 1.
func TestSetVersion_ResetsRelease(t *testing.T) {
	t.Parallel()

	path := writeSample(t, sampleConfig)

	file, err := Load(path)
	require.NoError(t, err)
	require.False(t, file.Modified())

	require.NoError(t, file.SetVersion("codex", "1.3.0"))
	require.True(t, file.Modified())

	codex := file.Package("codex")
	require.Equal(t, "1.3.0", codex.Version)
	require.Equal(t, 1, codex.Release)

	require.ErrorIs(t, file.SetVersion("nope", "1.0.0"), errPackageNotFound)
}

// TestSaveRoundtrip ensures a rewrite persists mutations and preserves
// order, comments, and fields the typed view does not model.
func TestSaveRoundtrip(t *testing.T) {
	t.Parallel()

	extended := sampleConfig + "    maintainer_note: keep me\n"
	path := writeSample(t, extended)

	file, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, file.SetVersion("cloudtool", "0.51.0"))
	require.NoError(t, file.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "# tracked packages")
	require.Contains(t, string(raw), "maintainer_note: keep me")

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "codex", reloaded.Packages[0].Name)
	require.Equal(t, "cloudtool", reloaded.Packages[1].Name)

	cloudtool := reloaded.Package("cloudtool")
	require.Equal(t, "0.51.0", cloudtool.Version)
	require.Equal(t, 1, cloudtool.Release)

	// Untouched package keeps its counter.
	require.Equal(t, 4, reloaded.Package("codex").Release)
}
