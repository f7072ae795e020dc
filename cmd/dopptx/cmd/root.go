package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/dotpptx/internal/service/packer"
	"github.com/oshokin/dotpptx/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// deleteOriginal removes each source tree after its package is written.
	deleteOriginal bool

	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for reassembling packages.
	rootCmd = &cobra.Command{
		Use:   "dopptx <tree-path>",
		Short: "Reassemble an exploded directory tree into a presentation package",
		Long: "Reassemble a <stem>_pptx directory back into a <stem>.pptx package. " +
			"Given a directory without the suffix, every suffixed subdirectory inside " +
			"it is packed.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packer.Options{
				Path:           args[0],
				DeleteOriginal: deleteOriginal,
				LogLevel:       logLevel,
				ConfigPath:     configPath,
			}

			return packer.Run(ctx, options)
		},
	}
)

// Execute runs the dopptx CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().BoolVar(&deleteOriginal, "delete-original", false,
		"delete each source tree after its package is written successfully")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
