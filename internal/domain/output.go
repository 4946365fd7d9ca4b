package domain

import (
	"fmt"
	"strings"
)

// OutputFormat selects how a job's results are presented.
type OutputFormat string

const (
	OutputText  OutputFormat = "text"
	OutputJSON  OutputFormat = "json"
	OutputSARIF OutputFormat = "sarif"
)

// ParseOutputFormat accepts text, json or sarif (case-insensitive).
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON, OutputSARIF:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, sarif)", s)
	}
}

// DiffMode selects the ChangeRenderer presentation.
type DiffMode int

const (
	DiffSideBySide DiffMode = iota
	DiffInline
)

func (m DiffMode) String() string {
	if m == DiffInline {
		return "inline"
	}
	return "side-by-side"
}

// ParseDiffMode accepts side-by-side (default) or inline.
func ParseDiffMode(s string) (DiffMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "side-by-side", "sidebyside", "split":
		return DiffSideBySide, nil
	case "inline", "unified":
		return DiffInline, nil
	default:
		return DiffSideBySide, fmt.Errorf("unknown diff mode %q (valid: side-by-side, inline)", s)
	}
}

// SplitExtensions turns "yaml, yml" into its trimmed, non-empty parts.
func SplitExtensions(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
