package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
	"github.com/tetarus/arch-repo-tools/internal/service/indexer"
	"github.com/tetarus/arch-repo-tools/internal/version"
)

var (
	// configPath stores the path to packages.yaml.
	configPath string
	// templatePath is the HTML page template.
	templatePath string
	// outputDir holds built artifacts and receives index.html.
	outputDir string
	// logLevel selects the minimum level for console output.
	logLevel string

	// rootCmd represents the base command for regenerating the package index.
	rootCmd = &cobra.Command{
		Use:   "arch-repo-indexer",
		Short: "Regenerate the static HTML package index",
		Long: `Render index.html from the page template, listing every configured
package together with the built artifact files found in the output
directory. Packages without artifacts show a "not built" placeholder row.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &indexer.Options{
				ConfigPath:   configPath,
				TemplatePath: templatePath,
				OutputDir:    outputDir,
			}

			return indexer.Run(ctx, options)
		},
	}
)

// Execute runs the arch-repo-indexer CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", indexer.DefaultTemplatePath, "HTML template file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", indexer.DefaultOutputDir, "directory with built artifacts")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}
