package updater

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
	"github.com/tetarus/arch-repo-tools/internal/pkgver"
	"github.com/tetarus/arch-repo-tools/internal/upstream"
)

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to packages.yaml.
	ConfigPath string
	// DryRun reports would-be changes without rewriting the file.
	DryRun bool
}

// runner holds the state of a single update pass.
// It is intentionally unexported; call Run(ctx, Options) from callers.
type runner struct {
	cfgPath string
	dryRun  bool
	file    *config.File
	client  *http.Client
	updated []string
}

// Run executes one version-update pass over all configured packages and is
// the public entry point for the CLI. Only fatal conditions (missing or
// unparseable configuration) produce an error; per-package check failures
// are logged and skipped.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "arch-repo-updater")

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultFilename
	}

	release, err := acquireMarker(ctx, filepath.Dir(cfgPath))
	if err != nil {
		return err
	}

	defer release()

	file, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	r := &runner{
		cfgPath: cfgPath,
		dryRun:  opts.DryRun,
		file:    file,
		client:  upstream.NewHTTPClient(),
	}

	return r.run(ctx)
}

// run iterates the packages in file order and rewrites the configuration
// once at the end when anything changed.
func (r *runner) run(ctx context.Context) error {
	if len(r.file.Packages) == 0 {
		logger.Warnf(ctx, "No packages found in %s", r.cfgPath)
		return nil
	}

	logger.Infof(ctx, "Found %d packages to check", len(r.file.Packages))

	for _, pkg := range r.file.Packages {
		r.checkPackage(ctx, pkg)
	}

	if !r.file.Modified() {
		logger.Info(ctx, "No version updates found")
		return nil
	}

	if r.dryRun {
		logger.Infof(ctx, "Dry run: would update %s", strings.Join(r.updated, ", "))
		return nil
	}

	logger.Infof(ctx, "Updating %s with %d changes", r.cfgPath, len(r.updated))

	if err := r.file.Save(r.cfgPath); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}

	logger.Infof(ctx, "Updated packages: %s", strings.Join(r.updated, ", "))

	return nil
}

// checkPackage queries the package's upstream and applies the outcome.
func (r *runner) checkPackage(ctx context.Context, pkg *config.Package) {
	logger.Infof(ctx, "Checking version for %s (current: %s)", pkg.Name, pkg.Version)

	checker, err := upstream.NewChecker(&pkg.Upstream, r.client)
	if err != nil {
		logger.Errorf(ctx, "%s: %v", pkg.Name, err)
		return
	}

	latest, err := checker.Latest(ctx)

	r.apply(ctx, pkg, latest, err)
}

// apply decides what a check result means for one package. A failure or
// "no update" leaves the record untouched; a changed version is written to
// the in-memory file with the release counter reset.
func (r *runner) apply(ctx context.Context, pkg *config.Package, latest string, err error) {
	switch {
	case errors.Is(err, upstream.ErrNoUpdate):
		logger.Infof(ctx, "%s: %v", pkg.Name, err)
		return
	case err != nil:
		logger.Warnf(ctx, "Failed to get new version for %s: %v", pkg.Name, err)
		return
	}

	change := pkgver.Compare(pkg.Version, latest)
	if latest == pkg.Version || change == pkgver.Same {
		logger.Infof(ctx, "%s: No version change", pkg.Name)
		return
	}

	logger.Infof(ctx, "%s: %s -> %s (%s)", pkg.Name, pkg.Version, latest, change)

	if err = r.file.SetVersion(pkg.Name, latest); err != nil {
		logger.Errorf(ctx, "%s: %v", pkg.Name, err)
		return
	}

	r.updated = append(r.updated, pkg.Name)
}
