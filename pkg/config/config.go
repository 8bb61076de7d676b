package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloudlet-dev/coogle/pkg/sig"
)

// FileName is the per-project configuration file looked up at the scan root.
const FileName = ".coogle.yml"

// Config holds per-project scan settings.
type Config struct {
	// Extensions overrides the default C/C++ extension set.
	Extensions []string `yaml:"extensions"`

	// Exclude holds glob patterns for paths to skip, relative to the root.
	Exclude []string `yaml:"exclude"`

	// MaxFileSize is the largest file to inspect, in bytes (0 = no limit).
	MaxFileSize int64 `yaml:"max_file_size"`

	// IncludeHidden includes dotfiles and dot-directories.
	IncludeHidden bool `yaml:"include_hidden"`

	// Aliases holds extra type alias rules applied during normalization,
	// on top of the built-in set.
	Aliases []aliasEntry `yaml:"aliases"`
}

type aliasEntry struct {
	Verbose   string `yaml:"verbose"`
	Canonical string `yaml:"canonical"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Parse decodes a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i, a := range cfg.Aliases {
		if a.Verbose == "" || a.Canonical == "" {
			return nil, fmt.Errorf("alias %d: verbose and canonical are required", i)
		}
	}
	return cfg, nil
}

// Load reads FileName from root. A missing file is not an error and
// yields the defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// AliasRules converts the configured aliases to normalization rules.
func (c *Config) AliasRules() []sig.AliasRule {
	if len(c.Aliases) == 0 {
		return nil
	}
	rules := make([]sig.AliasRule, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		rules = append(rules, sig.AliasRule{Verbose: a.Verbose, Canonical: a.Canonical})
	}
	return rules
}
