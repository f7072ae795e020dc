package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/dotpptx/internal/service/unpacker"
	"github.com/oshokin/dotpptx/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// pretty enables the markup prettify pass after extraction.
	pretty bool

	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for exploding packages.
	rootCmd = &cobra.Command{
		Use:   "unpptx <path>",
		Short: "Explode a presentation package into a directory tree",
		Long: "Explode a .pptx package into a <stem>_pptx directory of its member files, " +
			"so the presentation can be diffed, versioned, or hand-edited as plain text. " +
			"Given a directory, every package directly inside it is exploded; editor temp " +
			"files (~$...) are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &unpacker.Options{
				Path:       args[0],
				Pretty:     pretty,
				LogLevel:   logLevel,
				ConfigPath: configPath,
			}

			return unpacker.Run(ctx, options)
		},
	}
)

// Execute runs the unpptx CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "reformat markup parts with indentation after extraction")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
