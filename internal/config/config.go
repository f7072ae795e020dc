package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/dotpptx/internal/logger"
)

// Config holds tool-wide settings shared by the unpptx and dopptx binaries.
type Config struct {
	// LogLevel is the minimum level for log output ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
	// Pretty turns on the markup prettify pass for every unpack,
	// as if --pretty were always given.
	Pretty bool `yaml:"pretty"`
	// ContinueOnError switches batch runs from abort-on-first-failure
	// to per-item isolation with an aggregated report.
	ContinueOnError bool `yaml:"continue_on_error"`
	// Indent is the number of spaces per nesting level used by the prettify pass.
	Indent int `yaml:"indent"`
}

const (
	// DefaultConfigFilename is the default filename for tool settings.
	DefaultConfigFilename = "dotpptx-settings.yaml"

	// DefaultIndent is the prettify indent width used when none is configured.
	DefaultIndent = 2
)

// errUnknownLogLevel is returned when the configured log level cannot be parsed.
var errUnknownLogLevel = errors.New("unknown log level")

// Default returns settings used when no configuration file is present.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Indent:   DefaultIndent,
	}
}

// Load reads configuration from the provided path and validates it.
//
// An empty path means the default filename; if that default file does not
// exist, built-in defaults are returned. A path given explicitly must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the provided settings and fills in defaults for omitted fields.
func Validate(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.Indent <= 0 {
		cfg.Indent = DefaultIndent
	}

	return nil
}
