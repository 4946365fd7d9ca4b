package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akeso/akeso/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	warningItemStyle   = lipgloss.NewStyle().Foreground(warning)
)

// RenderHealReport renders the outcome of a heal run: what was written,
// where the backups went and what still fails.
func RenderHealReport(records []domain.FileRecord, dryRun bool) string {
	var b strings.Builder

	var healed, backups, failed, manual []domain.FileRecord
	for _, r := range records {
		if r.Written || (dryRun && r.HasChange()) {
			healed = append(healed, r)
		}
		if r.BackupPath != "" {
			backups = append(backups, r)
		}
		if !r.Success {
			failed = append(failed, r)
		}
		if hasManualFindings(r) {
			manual = append(manual, r)
		}
	}

	title := "Healed"
	if dryRun {
		title = "Would heal"
	}
	renderRecordSection(&b, title, healed, func(r domain.FileRecord) string {
		return passStyle.Render("●") + " " + r.FilePath
	})
	renderRecordSection(&b, "Backups", backups, func(r domain.FileRecord) string {
		return faintStyle.Render("●") + " " + fileStyle.Render(r.BackupPath)
	})
	renderRecordSection(&b, "Needs manual attention", manual, func(r domain.FileRecord) string {
		var ids []string
		for _, f := range r.Findings {
			if !f.Healable {
				ids = append(ids, f.RuleID)
			}
		}
		return warningItemStyle.Render("●") + " " + r.FilePath + "  " + faintStyle.Render(strings.Join(ids, ", "))
	})
	renderRecordSection(&b, "Below threshold", failed, func(r domain.FileRecord) string {
		detail := fmt.Sprintf("score %d", r.Score)
		if r.Error != "" {
			detail = r.Error
		}
		return failStyle.Render("●") + " " + r.FilePath + "  " + faintStyle.Render(detail)
	})

	b.WriteString("\n")
	verb := "Healed"
	if dryRun {
		verb = "Would heal"
	}
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%s %d files", verb, len(healed))))
	b.WriteString("\n")
	if dryRun && len(healed) > 0 {
		b.WriteString("  " + hintStyle.Render("Run again without --dry-run to write the changes."))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRecordSection(b *strings.Builder, title string, items []domain.FileRecord, line func(domain.FileRecord) string) {
	if len(items) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(items))),
	)
	for _, r := range items {
		b.WriteString("    " + line(r) + "\n")
	}
}

func hasManualFindings(r domain.FileRecord) bool {
	for _, f := range r.Findings {
		if !f.Healable {
			return true
		}
	}
	return false
}
