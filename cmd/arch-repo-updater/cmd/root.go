package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/logger"
	"github.com/tetarus/arch-repo-tools/internal/service/updater"
	"github.com/tetarus/arch-repo-tools/internal/version"
)

var (
	// configPath stores the path to packages.yaml.
	configPath string
	// dryRun reports would-be changes without rewriting the file.
	dryRun bool
	// logLevel selects the minimum level for console output.
	logLevel string

	// rootCmd represents the base command for checking upstream versions.
	rootCmd = &cobra.Command{
		Use:   "arch-repo-updater",
		Short: "Check upstream sources and update recorded package versions",
		Long: `Check every package in packages.yaml against its upstream source
(GitHub releases or a GCS bucket) and rewrite the file in place when a new
version is available. The release counter (pkgrel) is reset to 1 for every
package whose version changed.

A failed check for one package never aborts the run; the package is left
unchanged and processing continues.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel(logLevel)

			options := &updater.Options{
				ConfigPath: configPath,
				DryRun:     dryRun,
			}

			return updater.Run(ctx, options)
		},
	}
)

// Execute runs the arch-repo-updater CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel configures the global logger from the flag value.
func applyLogLevel(value string) {
	if level, ok := logger.ParseLogLevel(value); ok {
		logger.SetLevel(level)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "path to packages.yaml")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report changes without writing")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}
