package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akeso/akeso/internal/adapters/outbound/tui"
	"github.com/akeso/akeso/internal/domain"
)

func sampleRecord() domain.FileRecord {
	return domain.FileRecord{
		FilePath:      "deploy/api.yaml",
		RawContent:    "image: nginx:latest \n",
		HealedContent: domain.StringPtr("image: nginx:latest\n"),
		Success:       true,
		Score:         88,
		Findings: []domain.Finding{
			{RuleID: "trailing-whitespace", Severity: domain.SeverityInfo, Line: 1, Message: "trailing whitespace", Healable: true},
			{RuleID: "no-latest-tag", Severity: domain.SeverityWarning, Line: 1, Message: `image "nginx:latest" is not pinned to a version`},
		},
	}
}

func TestRenderRecord_ContainsScoreAndPath(t *testing.T) {
	output := tui.RenderRecord(sampleRecord())
	assert.Contains(t, output, "deploy/api.yaml")
	assert.Contains(t, output, "88 / 100")
	assert.Contains(t, output, "A")
}

func TestRenderRecord_WarningsBeforeInfo(t *testing.T) {
	output := tui.RenderRecord(sampleRecord())
	warnIdx := strings.Index(output, "no-latest-tag")
	infoIdx := strings.Index(output, "trailing-whitespace")
	assert.True(t, warnIdx >= 0 && infoIdx >= 0)
	assert.Less(t, warnIdx, infoIdx)
	assert.Contains(t, output, "1 warnings")
	assert.Contains(t, output, "1 info")
	assert.Contains(t, output, "fixable")
}

func TestRenderRecord_SeverityOrderIsStable(t *testing.T) {
	r := domain.FileRecord{
		FilePath: "mixed.yaml",
		Success:  true,
		Score:    60,
		Findings: []domain.Finding{
			{RuleID: "info-first", Severity: domain.SeverityInfo, Line: 1, Message: "i1"},
			{RuleID: "warn-first", Severity: domain.SeverityWarning, Line: 2, Message: "w1"},
			{RuleID: "error-only", Severity: domain.SeverityError, Line: 3, Message: "e1"},
			{RuleID: "warn-second", Severity: domain.SeverityWarning, Line: 4, Message: "w2"},
			{RuleID: "info-second", Severity: domain.SeverityInfo, Line: 5, Message: "i2"},
		},
	}
	output := tui.RenderRecord(r)

	var idx []int
	for _, id := range []string{"error-only", "warn-first", "warn-second", "info-first", "info-second"} {
		i := strings.Index(output, id)
		assert.GreaterOrEqual(t, i, 0, id)
		idx = append(idx, i)
	}
	assert.IsIncreasing(t, idx)
	assert.Equal(t, "info-first", r.Findings[0].RuleID, "input slice is left untouched")
}

func TestRenderRecord_Status(t *testing.T) {
	assert.Contains(t, tui.RenderRecord(sampleRecord()), "FIXABLE")

	clean := domain.FileRecord{FilePath: "ok.yaml", RawContent: "a: 1\n", Success: true, Score: 100}
	output := tui.RenderRecord(clean)
	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "No findings.")

	broken := domain.FileRecord{FilePath: "gone.yaml", Error: "reading gone.yaml: no such file"}
	output = tui.RenderRecord(broken)
	assert.Contains(t, output, "ERROR")
	assert.Contains(t, output, "no such file")
}

func TestRenderRecord_ShowsBackup(t *testing.T) {
	r := sampleRecord()
	r.Written = true
	r.BackupPath = "deploy/api.akeso.backup"
	output := tui.RenderRecord(r)
	assert.Contains(t, output, "HEALED")
	assert.Contains(t, output, "deploy/api.akeso.backup")
}

func TestRenderSummaryTable(t *testing.T) {
	records := []domain.FileRecord{
		sampleRecord(),
		{FilePath: "svc.yaml", RawContent: "a: 1\n", Success: true, Score: 100},
		{FilePath: "bad.yaml", RawContent: "\tx: 1\n", Success: false, Score: 40},
	}

	output := tui.RenderSummaryTable(records, false)
	assert.Contains(t, output, "File")
	assert.Contains(t, output, "deploy/api.yaml")
	assert.Contains(t, output, "svc.yaml")
	assert.Contains(t, output, "bad.yaml")
	assert.Contains(t, output, "3 files")
	assert.Contains(t, output, "2 passed")
	assert.Contains(t, output, "1 failed")
	assert.Contains(t, output, "1 with proposed repairs")
}

func TestRenderSummaryTable_SummaryOnly(t *testing.T) {
	records := []domain.FileRecord{
		sampleRecord(),
		{FilePath: "svc.yaml", RawContent: "a: 1\n", Success: true, Score: 100},
	}

	output := tui.RenderSummaryTable(records, true)
	assert.NotContains(t, output, "svc.yaml")
	assert.Contains(t, output, "2 files")
	assert.NotContains(t, output, "failed")
}

func TestRenderSummaryTable_ShortensLongPaths(t *testing.T) {
	records := []domain.FileRecord{{FilePath: "a/b/c/d/e.yaml", Success: true, Score: 100}}
	output := tui.RenderSummaryTable(records, false)
	assert.Contains(t, output, ".../c/d/e.yaml")
}
