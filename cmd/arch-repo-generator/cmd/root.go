package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
	"github.com/tetarus/arch-repo-tools/internal/service/generator"
	"github.com/tetarus/arch-repo-tools/internal/version"
)

var (
	// configPath stores the path to packages.yaml.
	configPath string
	// templatesDir holds the per-kind PKGBUILD templates.
	templatesDir string
	// outputDir receives one directory per package.
	outputDir string
	// logLevel selects the minimum level for console output.
	logLevel string

	// rootCmd represents the base command for rendering PKGBUILDs.
	rootCmd = &cobra.Command{
		Use:   "arch-repo-generator",
		Short: "Generate PKGBUILDs from templates and package metadata",
		Long: `Render one static PKGBUILD per package in packages.yaml. The template
is selected by the package's upstream type; a package with an unsupported
type is skipped with an error while the rest still generate.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &generator.Options{
				ConfigPath:   configPath,
				TemplatesDir: templatesDir,
				OutputDir:    outputDir,
			}

			return generator.Run(ctx, options)
		},
	}
)

// Execute runs the arch-repo-generator CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "path to packages.yaml")
	rootCmd.Flags().StringVarP(&templatesDir, "templates", "t", generator.DefaultTemplatesDir, "templates directory")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", generator.DefaultOutputDir, "output directory for PKGBUILDs")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}
