package packer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/oshokin/dotpptx/internal/config"
	"github.com/oshokin/dotpptx/internal/domain/document"
	"github.com/oshokin/dotpptx/internal/logger"
	"github.com/oshokin/dotpptx/internal/repository/archive"
)

// Options contains inputs for the dopptx entry point.
type Options struct {
	// Path is an exploded tree (base name ending in _pptx) or a parent
	// directory containing such trees.
	Path string
	// DeleteOriginal removes each source tree after its package is written.
	DeleteOriginal bool
	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
	// ConfigPath is an optional path to a settings file (defaults to dotpptx-settings.yaml).
	ConfigPath string
}

// Run executes the pack workflow: a single tree when Path carries the
// exploded-tree suffix, every suffixed subdirectory of Path otherwise.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "dopptx")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	applyLogLevel(opts.LogLevel, cfg.LogLevel)

	if _, err = os.Stat(opts.Path); err != nil {
		return fmt.Errorf("%s: %w", opts.Path, document.ErrPathNotFound)
	}

	if document.IsExplodedTree(filepath.Base(opts.Path)) {
		return packOne(ctx, opts.Path, opts.DeleteOriginal)
	}

	return packDir(ctx, opts.Path, opts.DeleteOriginal, cfg)
}

// packDir packs every exploded tree found directly in dir, in lexical order.
// A directory without the suffix contributes nothing. The configured batch
// policy decides whether one failing tree aborts the rest.
func packDir(ctx context.Context, dir string, deleteOriginal bool, cfg *config.Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w: %w", dir, document.ErrTreeRead, err)
	}

	var errs error

	for _, entry := range entries {
		if !entry.IsDir() || !document.IsExplodedTree(entry.Name()) {
			continue
		}

		if err = packOne(ctx, filepath.Join(dir, entry.Name()), deleteOriginal); err != nil {
			if !cfg.ContinueOnError {
				return err
			}

			logger.ErrorKV(ctx, "Pack failed, continuing batch", "tree", entry.Name(), "error", err)
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// packOne packs a single exploded tree into a sibling package file and
// optionally removes the tree afterwards.
func packOne(ctx context.Context, treeDir string, deleteOriginal bool) error {
	target := filepath.Join(filepath.Dir(treeDir), document.PackageFileName(treeDir))

	names, err := archive.Create(ctx, treeDir, target)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Packed tree", "tree", treeDir, "package", target, "members", len(names))

	if !deleteOriginal {
		return nil
	}

	// The package is on disk at this point; only then is the source removed.
	if err = os.RemoveAll(treeDir); err != nil {
		return fmt.Errorf("delete original tree %s: %w", treeDir, err)
	}

	logger.InfoKV(ctx, "Deleted original tree", "tree", treeDir)

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
