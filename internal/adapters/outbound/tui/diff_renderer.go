package tui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/akeso/akeso/internal/domain"
)

// DiffLineKind classifies one line of a unified diff.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineFileHeader
	DiffLineHunkHeader
	DiffLineRemoved
	DiffLineAdded
)

const (
	diffFromLabel = "Original"
	diffToLabel   = "Healed"
	diffContext   = 3
	noEOLMarker   = `\ No newline at end of file`
)

var (
	diffTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	gutterStyle     = lipgloss.NewStyle().Foreground(faint)

	originalPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1)

	healedPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(0, 1)

	inlinePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(info).
			Padding(0, 1)

	diffLineStyles = map[DiffLineKind]lipgloss.Style{
		DiffLineFileHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C084FC")),
		DiffLineHunkHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")),
		DiffLineRemoved:    lipgloss.NewStyle().Foreground(danger),
		DiffLineAdded:      lipgloss.NewStyle().Foreground(success),
		DiffLineContext:    dimStyle,
	}
)

// RenderDiff shows the delta between original and healed content for label.
// Equal inputs render a single "No changes" line. color enables syntax
// highlighting in the side-by-side panels.
func RenderDiff(original, healed, label string, mode domain.DiffMode, color bool) string {
	if original == healed {
		return dimStyle.Render("No changes for "+label) + "\n"
	}
	if mode == domain.DiffInline {
		return renderInline(original, healed, label)
	}
	return renderSideBySide(original, healed, label, color)
}

func renderSideBySide(original, healed, label string, color bool) string {
	var b strings.Builder
	b.WriteString(diffTitleStyle.Render("Proposed changes for " + label))
	b.WriteString("\n")

	left := originalPanel.Render(panelTitleStyle.Render(diffFromLabel) + "\n" + numbered(highlight(original, color)))
	right := healedPanel.Render(panelTitleStyle.Render(diffToLabel) + "\n" + numbered(highlight(healed, color)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Pipe through a pager if the content is long"))
	b.WriteString("\n")
	return b.String()
}

func renderInline(original, healed, label string) string {
	unified := UnifiedDiff(original, healed)

	var body strings.Builder
	body.WriteString(diffTitleStyle.Render("Proposed changes for "+label) + "\n")
	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		body.WriteString(diffLineStyles[ClassifyDiffLine(line)].Render(line))
		body.WriteString("\n")
	}
	if stats, err := ComputeDiffStats(unified); err == nil {
		body.WriteString(dimStyle.Render(stats.String()))
	}

	return inlinePanel.Render(body.String()) + "\n"
}

// UnifiedDiff returns a unified diff of original against healed with three
// lines of context, labelled "Original" and "Healed". Equal inputs yield "".
func UnifiedDiff(original, healed string) string {
	if original == healed {
		return ""
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(healed),
		FromFile: diffFromLabel,
		ToFile:   diffToLabel,
		Context:  diffContext,
	})
	if err != nil {
		return ""
	}
	return out
}

// ClassifyDiffLine reports how a unified diff line should be styled.
func ClassifyDiffLine(line string) DiffLineKind {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return DiffLineFileHeader
	case strings.HasPrefix(line, "@@"):
		return DiffLineHunkHeader
	case strings.HasPrefix(line, "-"):
		return DiffLineRemoved
	case strings.HasPrefix(line, "+"):
		return DiffLineAdded
	default:
		return DiffLineContext
	}
}

// DiffStats summarises a unified diff.
type DiffStats struct {
	Hunks   int
	Added   int
	Removed int
}

func (s DiffStats) String() string {
	noun := "hunks"
	if s.Hunks == 1 {
		noun = "hunk"
	}
	return fmt.Sprintf("%d %s, +%d -%d", s.Hunks, noun, s.Added, s.Removed)
}

// ComputeDiffStats parses a single-file unified diff and counts its changes.
func ComputeDiffStats(unified string) (DiffStats, error) {
	if unified == "" {
		return DiffStats{}, nil
	}
	fd, err := godiff.ParseFileDiff([]byte(unified))
	if err != nil {
		return DiffStats{}, fmt.Errorf("parsing diff: %w", err)
	}

	stats := DiffStats{Hunks: len(fd.Hunks)}
	for _, h := range fd.Hunks {
		for _, line := range strings.Split(string(h.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				stats.Added++
			case strings.HasPrefix(line, "-"):
				stats.Removed++
			}
		}
	}
	return stats, nil
}

// splitLines keeps line terminators. A last line without one is marked the
// way git marks it so the diff output stays line-oriented.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n" + noEOLMarker + "\n"
	return lines
}

// highlight renders YAML with chroma, or returns it as is without color.
func highlight(src string, color bool) string {
	formatter := "noop"
	if color {
		formatter = "terminal256"
	}
	var b strings.Builder
	if err := quick.Highlight(&b, src, "yaml", formatter, "monokai"); err != nil {
		return src
	}
	return b.String()
}

func numbered(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	for i, l := range lines {
		lines[i] = gutterStyle.Render(fmt.Sprintf("%*d ", width, i+1)) + l
	}
	return strings.Join(lines, "\n")
}
