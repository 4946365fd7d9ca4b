package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

// FileNames are the recognized configuration files, in lookup order.
var FileNames = []string{".akeso.yaml", ".akeso.yml"}

// Resolver loads the workspace configuration and answers ignore questions.
// It implements domain.IgnorePolicy.
type Resolver struct {
	logger  *zap.Logger
	cfg     domain.Config
	source  string
	ignore  []matcher
	enabled []matcher
}

// matchers holds the compiled patterns of one configuration.
type matchers struct {
	ignore  []matcher
	enabled []matcher
}

// New creates a Resolver holding the built-in defaults.
func New(logger *zap.Logger) *Resolver {
	r := &Resolver{logger: logging.OrNop(logger)}
	r.useDefaults()
	return r
}

// Load reads the first recognized config file in workspace that parses and
// merges it over the defaults. Parse failures are logged and the next
// candidate is tried; the run never aborts because of configuration.
func (r *Resolver) Load(workspace string) domain.Config {
	for _, name := range FileNames {
		path := filepath.Join(workspace, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				r.logger.Warn("configuration unreadable", zap.String("file", name), zap.Error(err))
			}
			continue
		}

		cfg, m, err := parse(data)
		if err != nil {
			r.logger.Warn("configuration ignored, keeping defaults",
				zap.Error(&domain.ConfigParseError{File: name, Err: err}))
			continue
		}

		r.apply(cfg, m, path)
		r.logger.Info("loaded configuration", zap.String("file", name))
		return r.cfg
	}

	r.useDefaults()
	return r.cfg
}

// Config returns the active configuration.
func (r *Resolver) Config() domain.Config { return r.cfg }

// Source returns the path of the loaded file, or "" when defaults are in use.
func (r *Resolver) Source() string { return r.source }

// Threshold returns the configured pass percentage.
func (r *Resolver) Threshold() int { return r.cfg.Rules.Threshold }

// MatchesPath reports whether path matches any rules.ignore glob.
func (r *Resolver) MatchesPath(path string) bool {
	if path == "" {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, re := range r.ignore {
		if re.Match(slashed) {
			return true
		}
	}
	return false
}

// IgnoresRule reports whether ruleID equals one of the rules.ignore entries.
func (r *Resolver) IgnoresRule(ruleID string) bool {
	if ruleID == "" {
		return false
	}
	for _, p := range r.cfg.Rules.Ignore {
		if p == ruleID {
			return true
		}
	}
	return false
}

// IsIgnored reports whether a file path or a rule id is exempt.
// The ignore list is shared: a pattern meant for files also suppresses a
// rule with the same literal name, and the other way round.
func (r *Resolver) IsIgnored(path, ruleID string) bool {
	return r.MatchesPath(path) || r.IgnoresRule(ruleID)
}

// AnalyzerEnabled reports whether name matches an analyzers.enabled pattern.
func (r *Resolver) AnalyzerEnabled(name string) bool {
	for _, re := range r.enabled {
		if re.Match(name) {
			return true
		}
	}
	return false
}

func (r *Resolver) apply(cfg domain.Config, m matchers, source string) {
	r.cfg = cfg
	r.source = source
	r.ignore = m.ignore
	r.enabled = m.enabled
}

func (r *Resolver) useDefaults() {
	cfg := domain.DefaultConfig()
	m, err := compile(cfg)
	if err != nil {
		panic(fmt.Sprintf("built-in configuration: %v", err))
	}
	r.apply(cfg, m, "")
}

func compile(cfg domain.Config) (matchers, error) {
	ignore, err := compilePatterns("rules.ignore", cfg.Rules.Ignore)
	if err != nil {
		return matchers{}, err
	}
	enabled, err := compilePatterns("analyzers.enabled", cfg.Analyzers.Enabled)
	if err != nil {
		return matchers{}, err
	}
	return matchers{ignore: ignore, enabled: enabled}, nil
}

// parse decodes a user document, merges it one level deep over the defaults
// and compiles its patterns.
func parse(data []byte) (domain.Config, matchers, error) {
	var user map[string]any
	if err := yaml.Unmarshal(data, &user); err != nil {
		return domain.Config{}, matchers{}, err
	}

	base, err := toMap(domain.DefaultConfig())
	if err != nil {
		return domain.Config{}, matchers{}, err
	}
	if err := mergeShallow(base, user); err != nil {
		return domain.Config{}, matchers{}, err
	}

	merged, err := yaml.Marshal(base)
	if err != nil {
		return domain.Config{}, matchers{}, err
	}
	var cfg domain.Config
	if err := yaml.Unmarshal(merged, &cfg); err != nil {
		return domain.Config{}, matchers{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, matchers{}, err
	}
	m, err := compile(cfg)
	if err != nil {
		return domain.Config{}, matchers{}, err
	}
	return cfg, m, nil
}

func toMap(cfg domain.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// mergeShallow overlays user onto base. Known groups are updated key by key;
// anything below a group key is replaced, never merged.
func mergeShallow(base, user map[string]any) error {
	for key, userVal := range user {
		baseGroup, isGroup := base[key].(map[string]any)
		if !isGroup {
			base[key] = userVal
			continue
		}
		userGroup, ok := userVal.(map[string]any)
		if !ok {
			return fmt.Errorf("%s must be a mapping", key)
		}
		for k, v := range userGroup {
			baseGroup[k] = v
		}
	}
	return nil
}
