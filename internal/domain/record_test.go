package domain_test

import (
	"testing"

	"github.com/akeso/akeso/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFileRecord_HasChange(t *testing.T) {
	assert.False(t, domain.FileRecord{RawContent: "a"}.HasChange(), "nil healed content")
	assert.False(t, domain.FileRecord{RawContent: "a", HealedContent: domain.StringPtr("a")}.HasChange())
	assert.True(t, domain.FileRecord{RawContent: "a", HealedContent: domain.StringPtr("b")}.HasChange())
	assert.True(t, domain.FileRecord{RawContent: "a", HealedContent: domain.StringPtr("")}.HasChange())
}

func TestFileRecord_Healed(t *testing.T) {
	assert.Equal(t, "raw", domain.FileRecord{RawContent: "raw"}.Healed())
	assert.Equal(t, "new", domain.FileRecord{RawContent: "raw", HealedContent: domain.StringPtr("new")}.Healed())
}

func threeFileBatch() []domain.FileRecord {
	return []domain.FileRecord{
		{FilePath: "a.yaml", RawContent: "a: 1\n", Success: false},
		{FilePath: "b.yaml", RawContent: "b: 1 \n", HealedContent: domain.StringPtr("b: 1\n"), Success: true},
		{FilePath: "c.yaml", RawContent: "c: 1\n", HealedContent: domain.StringPtr("c: 1\n"), Success: true},
	}
}

func TestIssues_ThreeFileScenario(t *testing.T) {
	issues := domain.Issues(threeFileBatch())
	assert.Len(t, issues, 2)
	assert.Equal(t, "a.yaml", issues[0].FilePath)
	assert.Equal(t, "b.yaml", issues[1].FilePath)
	assert.Equal(t, 1, domain.ExitCode(threeFileBatch()))
}

func TestExitCode_CleanBatch(t *testing.T) {
	records := []domain.FileRecord{
		{FilePath: "c.yaml", RawContent: "c: 1\n", Success: true},
	}
	assert.Equal(t, 0, domain.ExitCode(records))
	assert.Equal(t, 0, domain.ExitCode(nil))
}

func TestChanged_OnlyDifferingContent(t *testing.T) {
	changed := domain.Changed(threeFileBatch())
	assert.Len(t, changed, 1)
	assert.Equal(t, "b.yaml", changed[0].FilePath)
}

func TestNewEnvelope_Counts(t *testing.T) {
	records := threeFileBatch()
	records = append(records, domain.FileRecord{FilePath: "d.yaml", Written: true, Success: true})

	env := domain.NewEnvelope(records)
	assert.Len(t, env.ProcessedFiles, 4)
	assert.Equal(t, 3, env.HealedCount, "healed content present or written")
	assert.Equal(t, 3, env.SuccessCount)
	assert.Equal(t, "a.yaml", env.ProcessedFiles[0].FilePath, "order is preserved")
}

func TestNewEnvelope_EmptyHasNonNilSlice(t *testing.T) {
	env := domain.NewEnvelope(nil)
	assert.NotNil(t, env.ProcessedFiles)
	assert.Zero(t, env.HealedCount)
}

func TestParseOutputFormat(t *testing.T) {
	f, err := domain.ParseOutputFormat("SARIF")
	assert.NoError(t, err)
	assert.Equal(t, domain.OutputSARIF, f)

	f, err = domain.ParseOutputFormat("")
	assert.NoError(t, err)
	assert.Equal(t, domain.OutputText, f)

	_, err = domain.ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestParseDiffMode(t *testing.T) {
	m, err := domain.ParseDiffMode("inline")
	assert.NoError(t, err)
	assert.Equal(t, domain.DiffInline, m)

	m, err = domain.ParseDiffMode("")
	assert.NoError(t, err)
	assert.Equal(t, domain.DiffSideBySide, m)

	_, err = domain.ParseDiffMode("3d")
	assert.Error(t, err)
}

func TestSplitExtensions(t *testing.T) {
	assert.Equal(t, []string{"yaml", ".yml"}, domain.SplitExtensions(" yaml, .yml ,,"))
	assert.Empty(t, domain.SplitExtensions(""))
}
