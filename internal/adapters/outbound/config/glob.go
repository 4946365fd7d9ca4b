package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// matcher is a compiled rules.ignore or analyzers.enabled pattern.
// Patterns are compiled without separators, so "*" also crosses "/" and
// "build/*" covers nested files.
type matcher = glob.Glob

// compilePatterns compiles every pattern or reports the first one that is invalid.
func compilePatterns(key string, patterns []string) ([]matcher, error) {
	out := make([]matcher, 0, len(patterns))
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%s[%d] %q: %w", key, i, p, err)
		}
		out = append(out, g)
	}
	return out, nil
}
