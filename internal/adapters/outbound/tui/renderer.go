package tui

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akeso/akeso/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRecord renders the audit of a single file or stream.
func RenderRecord(r domain.FileRecord) string {
	var b strings.Builder

	grade := domain.GradeFor(r.Score)
	title := headerStyle.Render("akeso")
	path := fileStyle.Render(r.FilePath)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100  %s", r.Score, grade))

	b.WriteString(boxStyle.Render(title + "\n" + path + "\n\n" + scoreStyled))
	b.WriteString("\n\n")

	b.WriteString("  " + statusLabel(r) + "\n")
	if r.Error != "" {
		b.WriteString("  " + failStyle.Render(r.Error) + "\n")
	}
	if r.BackupPath != "" {
		b.WriteString("  " + dimStyle.Render("backup: "+r.BackupPath) + "\n")
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	findings := sortedFindings(r.Findings)
	if len(findings) == 0 {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
		return b.String()
	}

	errorCount, warnCount, infoCount := countSeverities(findings)
	b.WriteString("  " + titleStyle.Render("Findings") + "  ")
	if errorCount > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errorCount)) + "  ")
	}
	if warnCount > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnCount)) + "  ")
	}
	if infoCount > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infoCount)))
	}
	b.WriteString("\n\n")

	for _, f := range findings {
		renderFinding(&b, f)
	}
	return b.String()
}

// RenderSummaryTable renders one row per record followed by totals.
// With summaryOnly only the totals are printed.
func RenderSummaryTable(records []domain.FileRecord, summaryOnly bool) string {
	var b strings.Builder

	if !summaryOnly {
		width := 36
		for _, r := range records {
			width = max(width, len(shortenPath(r.FilePath))+2)
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			titleStyle.Render(padRight("File", width)),
			titleStyle.Render(padRight("Score", 8)),
			titleStyle.Render(padRight("Status", 12)),
			titleStyle.Render("Findings"),
		)
		b.WriteString("  " + separatorLine + "\n")

		for _, r := range records {
			score := lipgloss.NewStyle().Foreground(scoreColor(r.Score)).Render(padRight(fmt.Sprintf("%d", r.Score), 8))
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				fileStyle.Render(padRight(shortenPath(r.FilePath), width)),
				score,
				padRight(statusLabel(r), 12),
				dimStyle.Render(findingSummary(r)),
			)
		}
		b.WriteString("  " + separatorLine + "\n")
	}

	b.WriteString("  " + totalsLine(records) + "\n")
	return b.String()
}

func totalsLine(records []domain.FileRecord) string {
	passed, changed := 0, len(domain.Changed(records))
	for _, r := range records {
		if r.Success {
			passed++
		}
	}
	failed := len(records) - passed

	parts := []string{
		titleStyle.Render(fmt.Sprintf("%d files", len(records))),
		passStyle.Render(fmt.Sprintf("%d passed", passed)),
	}
	if failed > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	if changed > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d with proposed repairs", changed)))
	}
	return strings.Join(parts, dimStyle.Render(" · "))
}

func statusLabel(r domain.FileRecord) string {
	switch {
	case r.Error != "":
		return failStyle.Render("ERROR")
	case r.Written:
		return passStyle.Render("HEALED")
	case !r.Success:
		return failStyle.Render("FAIL")
	case r.HasChange():
		return warnStyle.Render("FIXABLE")
	default:
		return passStyle.Render("PASS")
	}
}

func findingSummary(r domain.FileRecord) string {
	if r.Error != "" {
		return r.Error
	}
	if len(r.Findings) == 0 {
		return "-"
	}
	e, w, i := countSeverities(r.Findings)
	return fmt.Sprintf("%dE %dW %dI", e, w, i)
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := severityTag(f.Severity)
	loc := faintStyle.Render(fmt.Sprintf("L%-4d", f.Line))
	rule := fileStyle.Render(f.RuleID)
	fixable := ""
	if f.Healable {
		fixable = "  " + passStyle.Render("fixable")
	}
	fmt.Fprintf(b, "    %s %s %s%s\n", tag, loc, rule, fixable)
	fmt.Fprintf(b, "               %s\n", dimStyle.Render(f.Message))
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(findings []domain.Finding) (errors, warnings, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

func sortedFindings(findings []domain.Finding) []domain.Finding {
	out := append([]domain.Finding(nil), findings...)
	order := map[string]int{
		domain.SeverityError:   0,
		domain.SeverityWarning: 1,
		domain.SeverityInfo:    2,
	}
	slices.SortStableFunc(out, func(a, b domain.Finding) int {
		return cmp.Compare(order[a.Severity], order[b.Severity])
	})
	return out
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}

// shortenPath keeps the last three segments of long paths.
func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return ".../" + strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
