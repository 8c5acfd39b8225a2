package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
)

const (
	// DefaultTemplatesDir holds the per-kind PKGBUILD templates.
	DefaultTemplatesDir = "templates"

	// DefaultOutputDir receives one directory per package.
	DefaultOutputDir = "pkgbuilds"

	// recipeFilename is the file written into every package directory.
	recipeFilename = "PKGBUILD"

	// directoryPermissions is used for created package directories.
	directoryPermissions = 0o755
)

// errNoPackages is returned when the configuration holds no packages at all.
var errNoPackages = errors.New("no packages found")

// Options are inputs accepted by the generator entry point.
type Options struct {
	// ConfigPath is the optional path to packages.yaml.
	ConfigPath string
	// TemplatesDir is the directory holding `<kind>.pkgbuild.tmpl` files.
	TemplatesDir string
	// OutputDir is where per-package directories are created.
	OutputDir string
}

// Run renders one PKGBUILD per configured package and is the public entry
// point for the CLI. Missing configuration or templates directory is fatal;
// a failure on one package is logged and the rest still generate.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "arch-repo-generator")

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultFilename
	}

	templatesDir := opts.TemplatesDir
	if templatesDir == "" {
		templatesDir = DefaultTemplatesDir
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	if _, err := os.Stat(templatesDir); err != nil {
		return fmt.Errorf("templates directory: %w", err)
	}

	file, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if len(file.Packages) == 0 {
		return fmt.Errorf("%s: %w", cfgPath, errNoPackages)
	}

	logger.Infof(ctx, "Found %d packages to generate", len(file.Packages))

	for _, pkg := range file.Packages {
		logger.Infof(ctx, "Generating PKGBUILD for %s", pkg.Name)

		if err = generatePackage(templatesDir, outputDir, pkg); err != nil {
			logger.Errorf(ctx, "Failed to generate PKGBUILD for %s: %v", pkg.Name, err)
			continue
		}

		logger.Infof(ctx, "Generated %s", filepath.Join(outputDir, pkg.Name, recipeFilename))
	}

	logger.Info(ctx, "PKGBUILD generation completed")

	return nil
}

// generatePackage renders and writes the recipe for one package.
// Nothing is written when template selection or rendering fails.
func generatePackage(templatesDir, outputDir string, pkg *config.Package) error {
	if err := pkg.Upstream.Validate(); err != nil {
		return err
	}

	tmpl, err := loadRecipeTemplate(templatesDir, pkg.Upstream.Kind)
	if err != nil {
		return err
	}

	content, err := tmpl.Render(newTemplateData(pkg))
	if err != nil {
		return err
	}

	packageDir := filepath.Join(outputDir, pkg.Name)
	if err = os.MkdirAll(packageDir, directoryPermissions); err != nil {
		return fmt.Errorf("create %s: %w", packageDir, err)
	}

	target := filepath.Join(packageDir, recipeFilename)
	if err = os.WriteFile(target, []byte(content), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	return nil
}
