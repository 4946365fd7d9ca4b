package rules

import (
	"fmt"
	"strings"

	"github.com/akeso/akeso/internal/domain"
)

// TrailingWhitespace flags spaces or tabs at the end of a line.
type TrailingWhitespace struct{}

func (r TrailingWhitespace) ID() string       { return IDOf(r) }
func (r TrailingWhitespace) Severity() string { return domain.SeverityInfo }
func (r TrailingWhitespace) Description() string {
	return "Lines must not end with spaces or tabs"
}

func (r TrailingWhitespace) Check(content string) []domain.Finding {
	var out []domain.Finding
	for i, l := range lines(content) {
		l = strings.TrimSuffix(l, "\r")
		if l != strings.TrimRight(l, " \t") {
			out = append(out, finding(r, i+1, true, "trailing whitespace"))
		}
	}
	return out
}

func (r TrailingWhitespace) Heal(content string) string {
	parts := strings.Split(content, "\n")
	for i, p := range parts {
		cr := strings.HasSuffix(p, "\r")
		p = strings.TrimRight(strings.TrimSuffix(p, "\r"), " \t")
		if cr {
			p += "\r"
		}
		parts[i] = p
	}
	return strings.Join(parts, "\n")
}

// TabIndentation flags tabs used for indentation, which YAML forbids.
type TabIndentation struct{}

func (r TabIndentation) ID() string       { return IDOf(r) }
func (r TabIndentation) Severity() string { return domain.SeverityError }
func (r TabIndentation) Description() string {
	return "Indentation must use spaces, not tabs"
}

func (r TabIndentation) Check(content string) []domain.Finding {
	var out []domain.Finding
	for i, l := range lines(content) {
		if strings.Contains(indent(l), "\t") {
			out = append(out, finding(r, i+1, true, "tab character in indentation"))
		}
	}
	return out
}

// Heal replaces every tab in leading whitespace with two spaces.
func (r TabIndentation) Heal(content string) string {
	parts := strings.Split(content, "\n")
	for i, p := range parts {
		ind := indent(p)
		if strings.Contains(ind, "\t") {
			parts[i] = strings.ReplaceAll(ind, "\t", "  ") + p[len(ind):]
		}
	}
	return strings.Join(parts, "\n")
}

func indent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// MissingFinalNewline flags non-empty content that does not end in "\n".
type MissingFinalNewline struct{}

func (r MissingFinalNewline) ID() string       { return IDOf(r) }
func (r MissingFinalNewline) Severity() string { return domain.SeverityInfo }
func (r MissingFinalNewline) Description() string {
	return "Files must end with a newline"
}

func (r MissingFinalNewline) Check(content string) []domain.Finding {
	if content == "" || strings.HasSuffix(content, "\n") {
		return nil
	}
	return []domain.Finding{finding(r, len(lines(content)), true, "file does not end with a newline")}
}

func (r MissingFinalNewline) Heal(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// CRLFLineEndings flags Windows line endings.
type CRLFLineEndings struct{}

func (r CRLFLineEndings) ID() string       { return IDOf(r) }
func (r CRLFLineEndings) Severity() string { return domain.SeverityWarning }
func (r CRLFLineEndings) Description() string {
	return "Lines must end with LF, not CRLF"
}

func (r CRLFLineEndings) Check(content string) []domain.Finding {
	n := strings.Count(content, "\r\n")
	if n == 0 {
		return nil
	}
	first := strings.Count(content[:strings.Index(content, "\r\n")], "\n") + 1
	return []domain.Finding{finding(r, first, true, fmt.Sprintf("%d CRLF line endings", n))}
}

func (r CRLFLineEndings) Heal(content string) string {
	return strings.ReplaceAll(content, "\r\n", "\n")
}
