package indexer

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
)

const (
	// DefaultTemplatePath is the page template with the three tokens.
	DefaultTemplatePath = "static/index-template.html"

	// DefaultOutputDir is the repository directory holding built artifacts.
	DefaultOutputDir = "x86_64"

	// indexFilename is written into the output directory.
	indexFilename = "index.html"

	// artifactSuffix is the glob tail matched against built package files.
	artifactSuffix = "-*.pkg.tar.zst"

	// The three literal substitution tokens; everything else in the
	// template passes through unchanged.
	tokenGenerationTime = "{{GENERATION_TIME}}"
	tokenPackageCount   = "{{PACKAGE_COUNT}}"
	tokenPackageTable   = "{{PACKAGE_TABLE}}"
)

// Options are inputs accepted by the indexer entry point.
type Options struct {
	// ConfigPath is the optional path to packages.yaml.
	ConfigPath string
	// TemplatePath is the HTML template file.
	TemplatePath string
	// OutputDir holds built artifacts and receives index.html.
	OutputDir string
}

// artifact is one built package file found in the output directory.
type artifact struct {
	name    string
	size    int64
	modTime time.Time
}

// Run regenerates index.html and is the public entry point for the CLI.
// A missing configuration, template, or output directory is fatal.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "arch-repo-indexer")

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultFilename
	}

	templatePath := opts.TemplatePath
	if templatePath == "" {
		templatePath = DefaultTemplatePath
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	logger.Info(ctx, "Generating index.html from template and package metadata")

	info, err := os.Stat(outputDir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", outputDir)
	}

	template, err := os.ReadFile(filepath.Clean(templatePath))
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	file, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	now := time.Now()

	table, err := buildTable(file.Packages, outputDir, now)
	if err != nil {
		return err
	}

	content := string(template)
	content = strings.ReplaceAll(content, tokenGenerationTime, now.UTC().Format("2006-01-02 15:04:05")+" UTC")
	content = strings.ReplaceAll(content, tokenPackageCount, strconv.Itoa(len(file.Packages)))
	content = strings.ReplaceAll(content, tokenPackageTable, table)

	target := filepath.Join(outputDir, indexFilename)
	if err = os.WriteFile(target, []byte(content), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	logger.Infof(ctx, "Generated index.html with %d packages", len(file.Packages))
	logger.Infof(ctx, "Output: %s", target)

	return nil
}

// buildTable renders one row per built artifact, or a placeholder row for
// packages without any.
func buildTable(packages []*config.Package, outputDir string, now time.Time) (string, error) {
	var builder strings.Builder

	for _, pkg := range packages {
		artifacts, err := packageArtifacts(outputDir, pkg.Name)
		if err != nil {
			return "", err
		}

		if len(artifacts) == 0 {
			writeRow(&builder, "", pkg.Name, pkg.Version, pkg.Description, "-", "not built")
			continue
		}

		for _, built := range artifacts {
			writeRow(&builder,
				built.name,
				pkg.Name,
				pkg.Version,
				pkg.Description,
				formatSize(built.size),
				formatAge(built.modTime, now),
			)
		}
	}

	return builder.String(), nil
}

// packageArtifacts lists the built files of one package, sorted by filename.
func packageArtifacts(outputDir, packageName string) ([]artifact, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, packageName+artifactSuffix))
	if err != nil {
		return nil, fmt.Errorf("scan artifacts for %s: %w", packageName, err)
	}

	sort.Strings(matches)

	artifacts := make([]artifact, 0, len(matches))

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}

		artifacts = append(artifacts, artifact{
			name:    filepath.Base(match),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	return artifacts, nil
}

// writeRow appends one table row; an empty filename renders the name
// without a download link.
func writeRow(builder *strings.Builder, filename, name, version, description, size, age string) {
	nameCell := html.EscapeString(name)
	if filename != "" {
		nameCell = fmt.Sprintf("<a href=%q>%s</a>", filename, nameCell)
	}

	builder.WriteString("\n                <tr>")
	builder.WriteString("\n                    <td>" + nameCell + "</td>")
	builder.WriteString("\n                    <td>" + html.EscapeString(version) + "</td>")
	builder.WriteString("\n                    <td>" + html.EscapeString(description) + "</td>")
	builder.WriteString("\n                    <td>" + size + "</td>")
	builder.WriteString("\n                    <td>" + age + "</td>")
	builder.WriteString("\n                </tr>")
}
