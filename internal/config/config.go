package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"time"
)

// Config represents the galaxy.yaml evaluator configuration.
type Config struct {
	// MaxIterations caps the reduction steps of one weak-head resolution.
	// Zero means DefaultMaxIterations.
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// MaxDepth caps nested resolutions. Zero means DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// MaxNodes caps the list cells one full evaluation may force, so an
	// infinite list fails instead of growing without bound. Zero means
	// DefaultMaxNodes.
	MaxNodes int `yaml:"max_nodes,omitempty"`

	// Memoize caches the resolved value of each statement so repeated
	// references to the same variable are reduced once.
	Memoize bool `yaml:"memoize,omitempty"`

	// Trace logs every reduction step to stderr.
	Trace bool `yaml:"trace,omitempty"`

	// Record is the path of a SQLite database that receives one row per
	// evaluation. Relative paths are resolved against the config file.
	Record string `yaml:"record,omitempty"`

	// Timeout bounds a whole evaluation, e.g. "30s". Empty means no limit.
	Timeout string `yaml:"timeout,omitempty"`
}

// Default returns the configuration used when no galaxy.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a galaxy.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	if cfg.Record != "" && !filepath.IsAbs(cfg.Record) {
		cfg.Record = filepath.Join(filepath.Dir(path), cfg.Record)
	}
	return cfg, nil
}

// ParseConfig parses galaxy.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for galaxy.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// TimeoutDuration parses Timeout. A zero duration means no limit.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("%s: max_iterations must not be negative", path)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must not be negative", path)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("%s: max_nodes must not be negative", path)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%s: timeout: %w", path, err)
		}
		if d < 0 {
			return fmt.Errorf("%s: timeout must not be negative", path)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = DefaultMaxNodes
	}
}
