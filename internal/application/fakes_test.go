package application_test

import (
	"fmt"

	"github.com/akeso/akeso/internal/domain"
)

type fakeEngine struct {
	records    []domain.FileRecord
	streamed   string
	dryRuns    []bool
	batchCalls int
	fileCalls  int
}

func (f *fakeEngine) AuditStream(content, sourceName string) domain.FileRecord {
	f.streamed = content
	if len(f.records) > 0 {
		return f.records[0]
	}
	return domain.FileRecord{FilePath: sourceName, RawContent: content, Success: true, Score: 100}
}

func (f *fakeEngine) AuditAndHealFile(path string, dryRun bool) domain.FileRecord {
	f.fileCalls++
	f.dryRuns = append(f.dryRuns, dryRun)
	if len(f.records) > 0 {
		return f.records[0]
	}
	return domain.FileRecord{FilePath: path, Success: true, Score: 100}
}

func (f *fakeEngine) BatchHeal(rootPath string, extensions []string, maxDepth int, dryRun bool) []domain.FileRecord {
	f.batchCalls++
	f.dryRuns = append(f.dryRuns, dryRun)
	return f.records
}

type stubPresenter struct{}

func (stubPresenter) Record(r domain.FileRecord) string { return "RECORD " + r.FilePath + "\n" }

func (stubPresenter) Summary(records []domain.FileRecord, summaryOnly bool) string {
	return fmt.Sprintf("SUMMARY %d summaryOnly=%t\n", len(records), summaryOnly)
}

func (stubPresenter) Diff(original, healed, label string, mode domain.DiffMode) string {
	return fmt.Sprintf("DIFF %s %s\n", label, mode)
}

func (stubPresenter) HealReport(records []domain.FileRecord, dryRun bool) string {
	return fmt.Sprintf("HEAL %d dryRun=%t\n", len(records), dryRun)
}

func threeRecords() []domain.FileRecord {
	return []domain.FileRecord{
		{FilePath: "a.yaml", RawContent: "a: 1\n", Success: false, Score: 40},
		{FilePath: "b.yaml", RawContent: "b: 1 \n", HealedContent: domain.StringPtr("b: 1\n"), Success: true, Score: 98},
		{FilePath: "c.yaml", RawContent: "c: 1\n", HealedContent: domain.StringPtr("c: 1\n"), Success: true, Score: 100},
	}
}
