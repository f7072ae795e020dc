package unpacker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/oshokin/dotpptx/internal/config"
	"github.com/oshokin/dotpptx/internal/domain/document"
	"github.com/oshokin/dotpptx/internal/logger"
	"github.com/oshokin/dotpptx/internal/markup"
	"github.com/oshokin/dotpptx/internal/repository/archive"
)

// Options contains inputs for the unpptx entry point.
type Options struct {
	// Path is a package file or a directory of packages to unpack.
	Path string
	// Pretty enables the markup prettify pass after extraction.
	Pretty bool
	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
	// ConfigPath is an optional path to a settings file (defaults to dotpptx-settings.yaml).
	ConfigPath string
}

// Run executes the unpack workflow: a single package when Path is a file,
// every package in the directory otherwise.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "unpptx")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	applyLogLevel(opts.LogLevel, cfg.LogLevel)

	info, err := os.Stat(opts.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Path, document.ErrPathNotFound)
	}

	pretty := opts.Pretty || cfg.Pretty

	if !info.IsDir() {
		return unpackOne(ctx, opts.Path, pretty, cfg.Indent)
	}

	return unpackDir(ctx, opts.Path, pretty, cfg)
}

// unpackDir unpacks every package file found directly in dir, in lexical order.
// Editor temp files are skipped silently. The configured batch policy decides
// whether one failing package aborts the rest.
func unpackDir(ctx context.Context, dir string, pretty bool, cfg *config.Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	var errs error

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !document.IsPackage(name) {
			continue
		}

		if document.IsEditorTempFile(name) {
			logger.DebugKV(ctx, "Skipping editor temp file", "name", name)
			continue
		}

		if err = unpackOne(ctx, filepath.Join(dir, name), pretty, cfg.Indent); err != nil {
			if !cfg.ContinueOnError {
				return err
			}

			logger.ErrorKV(ctx, "Unpack failed, continuing batch", "package", name, "error", err)
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// unpackOne extracts a single package into a sibling exploded tree and
// optionally prettifies it.
func unpackOne(ctx context.Context, packagePath string, pretty bool, indent int) error {
	dest := filepath.Join(filepath.Dir(packagePath), document.ExplodedDirName(packagePath))

	names, err := archive.Extract(ctx, packagePath, dest)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Unpacked package", "package", packagePath, "tree", dest, "members", len(names))

	if !pretty {
		return nil
	}

	reformatted, err := markup.PrettifyTree(ctx, dest, indent)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Prettified markup parts", "tree", dest, "files", reformatted)

	return nil
}

// applyLogLevel sets the global log level, preferring the CLI override.
func applyLogLevel(override, configured string) {
	level := configured
	if override != "" {
		level = override
	}

	if parsed, ok := logger.ParseLogLevel(level); ok {
		logger.SetLevel(parsed)
	}
}
