package tui

import "github.com/akeso/akeso/internal/domain"

// Presenter adapts the package renderers to application.Presenter.
// Color enables syntax highlighting; the caller decides it from its sink.
type Presenter struct {
	Color bool
}

func (Presenter) Record(r domain.FileRecord) string { return RenderRecord(r) }

func (Presenter) Summary(records []domain.FileRecord, summaryOnly bool) string {
	return RenderSummaryTable(records, summaryOnly)
}

func (p Presenter) Diff(original, healed, label string, mode domain.DiffMode) string {
	return RenderDiff(original, healed, label, mode, p.Color)
}

func (Presenter) HealReport(records []domain.FileRecord, dryRun bool) string {
	return RenderHealReport(records, dryRun)
}
