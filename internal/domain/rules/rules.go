// Package rules holds the text-level checks run against manifest files.
// Rules never parse YAML; they look at lines and bytes only.
package rules

import (
	"reflect"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/akeso/akeso/internal/domain"
)

// Rule detects one kind of problem and, when it can, repairs it.
type Rule interface {
	ID() string
	Severity() string
	Description() string
	Check(content string) []domain.Finding
	// Heal returns content with the problem repaired. Report-only rules
	// return content unchanged.
	Heal(content string) string
}

// Default returns every built-in rule in the order their repairs are applied.
// Line-ending normalization runs first so later rules see "\n" only.
func Default() []Rule {
	return []Rule{
		CRLFLineEndings{},
		TabIndentation{},
		TrailingWhitespace{},
		MissingFinalNewline{},
		NoLatestTag{},
	}
}

// IDOf derives a kebab-case id from the rule's type name,
// e.g. NoLatestTag becomes no-latest-tag.
func IDOf(r any) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	words := camelcase.Split(t.Name())
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// ByID returns the rule with the given id from Default.
func ByID(id string) (Rule, bool) {
	for _, r := range Default() {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// lines splits content without the empty element after a trailing newline.
func lines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func finding(r Rule, line int, healable bool, msg string) domain.Finding {
	return domain.Finding{
		RuleID:   r.ID(),
		Severity: r.Severity(),
		Line:     line,
		Message:  msg,
		Healable: healable,
	}
}
