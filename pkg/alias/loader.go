// Package alias loads template-alias rules for the signature normalizer.
// A rule collapses a verbose template spelling (the form canonical type
// reporting expands aliases to) back to its short name, e.g.
// std::basic_string<char, ...> to std::string.
package alias

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cloudlet-dev/coogle/pkg/sig"
)

// yamlAlias is the on-disk form of one alias rule.
type yamlAlias struct {
	Verbose   string `yaml:"verbose"`
	Canonical string `yaml:"canonical"`
}

// yamlAliasFile is the top-level structure of an alias rules YAML file.
type yamlAliasFile struct {
	Aliases []yamlAlias `yaml:"aliases"`
}

// Parse loads alias rules from YAML bytes.
func Parse(data []byte) ([]sig.AliasRule, error) {
	var file yamlAliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing alias rules: %w", err)
	}
	rules := make([]sig.AliasRule, 0, len(file.Aliases))
	for i, a := range file.Aliases {
		if a.Verbose == "" || a.Canonical == "" {
			return nil, fmt.Errorf("alias rule %d: verbose and canonical are required", i)
		}
		rules = append(rules, sig.AliasRule{Verbose: a.Verbose, Canonical: a.Canonical})
	}
	return rules, nil
}

// LoadFile loads alias rules from a YAML file path.
func LoadFile(path string) ([]sig.AliasRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias rules %s: %w", path, err)
	}
	return Parse(data)
}

// Builtin returns the embedded default alias rules.
func Builtin() []sig.AliasRule {
	rules, err := Parse(builtinYAML)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("builtin alias rules: %v", err))
	}
	return rules
}
