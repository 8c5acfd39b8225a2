package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetarus/arch-repo-tools/internal/service/generator"
)

// repoTemplatesDir points at the real shipped templates so the tests render
// exactly what the generator produces in production.
const repoTemplatesDir = "../../templates"

// TestGenerator_Run_RendersShippedTemplates generates recipes from the real
// template files and checks the substituted fields in the output.
func TestGenerator_Run_RendersShippedTemplates(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `packages:
  codex:
    version: 1.2.3
    pkgrel: 2
    description: coding agent cli
    url: https://example.com/codex
    license: Apache-2.0
    architectures:
      - x86_64
    depends:
      - glibc
    upstream:
      type: github
      repo: example/codex
      tag_prefix: rust-v
      asset_pattern: x86_64-unknown-linux-musl.tar.gz
  cloudctl:
    version: 0.50.0
    pkgrel: 1
    description: bucket distributed tool
    url: https://example.com/cloudctl
    license: custom
    architectures:
      - x86_64
    upstream:
      type: gcs
      bucket_url: https://storage.googleapis.com/cloudctl-releases
      platform_name: linux-amd64
      version_endpoint: latest.txt
      checksum_verification: true
`)

	outputDir := t.TempDir()

	require.NoError(t, generator.Run(context.Background(), &generator.Options{
		ConfigPath:   cfgPath,
		TemplatesDir: repoTemplatesDir,
		OutputDir:    outputDir,
	}))

	codex, err := os.ReadFile(filepath.Join(outputDir, "codex", "PKGBUILD"))
	require.NoError(t, err)

	codexRecipe := string(codex)
	require.Contains(t, codexRecipe, "pkgname=codex")
	require.Contains(t, codexRecipe, "pkgver=1.2.3")
	require.Contains(t, codexRecipe, "pkgrel=2")
	require.Contains(t, codexRecipe, `_repo="example/codex"`)
	require.Contains(t, codexRecipe, `_tag="rust-v${pkgver}"`)
	require.Contains(t, codexRecipe, "depends=('glibc')")

	cloudctl, err := os.ReadFile(filepath.Join(outputDir, "cloudctl", "PKGBUILD"))
	require.NoError(t, err)

	cloudctlRecipe := string(cloudctl)
	require.Contains(t, cloudctlRecipe, "pkgname=cloudctl")
	require.Contains(t, cloudctlRecipe, `_bucket="https://storage.googleapis.com/cloudctl-releases"`)
	require.Contains(t, cloudctlRecipe, `_platform="linux-amd64"`)

	// Checksum verification pulls jq into makedepends and emits the
	// verification block.
	require.Contains(t, cloudctlRecipe, "makedepends=('jq')")
	require.Contains(t, cloudctlRecipe, "sha256sum")

	// The custom license gets installed from a heredoc.
	require.Contains(t, cloudctlRecipe, "license=('custom')")
	require.Contains(t, cloudctlRecipe, "LICENSE")
}

// TestGenerator_Run_SkipsUnsupportedKind verifies that a package with an
// unrecognized upstream type produces no output while the rest still render.
func TestGenerator_Run_SkipsUnsupportedKind(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `packages:
  odd:
    version: 1.0.0
    pkgrel: 1
    description: unsupported upstream
    url: https://example.com/odd
    license: MIT
    architectures:
      - x86_64
    upstream:
      type: ftp
  codex:
    version: 1.2.3
    pkgrel: 1
    description: coding agent cli
    url: https://example.com/codex
    license: Apache-2.0
    architectures:
      - x86_64
    upstream:
      type: github
      repo: example/codex
`)

	outputDir := t.TempDir()

	require.NoError(t, generator.Run(context.Background(), &generator.Options{
		ConfigPath:   cfgPath,
		TemplatesDir: repoTemplatesDir,
		OutputDir:    outputDir,
	}))

	_, err := os.Stat(filepath.Join(outputDir, "odd"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(filepath.Join(outputDir, "codex", "PKGBUILD"))
	require.NoError(t, err)
}
