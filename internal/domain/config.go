package domain

import "fmt"

// DefaultThreshold is the pass percentage used when no configuration overrides it.
const DefaultThreshold = 70

// Config holds the merged user configuration loaded from .akeso.yaml.
// Unknown top-level groups land in Extra and are kept untouched.
type Config struct {
	Rules     RulesConfig     `yaml:"rules"     json:"rules"`
	Analyzers AnalyzersConfig `yaml:"analyzers" json:"analyzers"`
	Extra     map[string]any  `yaml:",inline"   json:"extra,omitempty"`
}

// RulesConfig controls the pass threshold and the shared ignore list.
// Ignore patterns match file paths (glob) and rule ids (literal).
type RulesConfig struct {
	Threshold int            `yaml:"threshold" json:"threshold"`
	Ignore    []string       `yaml:"ignore"    json:"ignore"`
	Extra     map[string]any `yaml:",inline"   json:"extra,omitempty"`
}

// AnalyzersConfig selects which analyzers run. "*" enables all of them.
type AnalyzersConfig struct {
	Enabled []string       `yaml:"enabled" json:"enabled"`
	Extra   map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// DefaultConfig returns the built-in configuration every run starts from.
func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			Threshold: DefaultThreshold,
			Ignore: []string{
				".git/*",
				"node_modules/*",
				"venv/*",
				"__pycache__/*",
			},
		},
		Analyzers: AnalyzersConfig{
			Enabled: []string{"*"},
		},
	}
}

// Validate checks the known groups. Extra groups are not validated.
func (c Config) Validate() error {
	if c.Rules.Threshold < 0 || c.Rules.Threshold > 100 {
		return fmt.Errorf("rules.threshold = %d (must be between 0 and 100)", c.Rules.Threshold)
	}
	for i, p := range c.Rules.Ignore {
		if p == "" {
			return fmt.Errorf("rules.ignore[%d] must not be empty", i)
		}
	}
	return nil
}
