package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeso/akeso/internal/adapters/inbound/cli"
	"github.com/akeso/akeso/internal/domain"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestScanCommand_CleanTree(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.yaml": "kind: Service\n"})

	out, err := execute(t, "", "--workspace", dir, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 files")
	assert.NotContains(t, out, "Tip:")
}

func TestScanCommand_DirtyTreeExitsOne(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.yaml": "kind: Service  \n",
		"ok.yml":   "kind: Pod\n",
	})

	out, err := execute(t, "", "--workspace", dir, "scan", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Tip: Run akeso heal")
	assert.Contains(t, out, "to fix 1 detected issues.")

	data, readErr := os.ReadFile(filepath.Join(dir, "app.yaml"))
	require.NoError(t, readErr)
	assert.Equal(t, "kind: Service  \n", string(data))
}

func TestScanCommand_JSON(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.yaml":     "kind: Pod\n",
		"sub/b.yaml": "kind: Pod",
	})

	out, err := execute(t, "", "--workspace", dir, "scan", dir, "-o", "json")
	assert.Equal(t, 1, exitCode(err))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output should be valid JSON")
	assert.Equal(t, "akeso", result["tool"])
	assert.Equal(t, dir, result["workspace"])
	assert.Len(t, result["processed_files"], 2)
}

func TestScanCommand_ExtAndDepthFlags(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.yaml":     "kind: Pod\n",
		"b.yml":      "kind: Pod\n",
		"sub/c.yaml": "kind: Pod\n",
	})

	out, err := execute(t, "", "--workspace", dir, "scan", dir, "--ext", "yaml", "--max-depth", "1", "-o", "json")
	require.NoError(t, err)

	var result struct {
		ProcessedFiles []struct {
			FilePath string `json:"file_path"`
		} `json:"processed_files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.ProcessedFiles, 1)
	assert.Equal(t, "a.yaml", result.ProcessedFiles[0].FilePath)
}

func TestScanCommand_Stdin(t *testing.T) {
	out, err := execute(t, "a: 1\r\n", "--workspace", t.TempDir(), "scan", "-")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "<stdin>")
	assert.Contains(t, out, "Found 1 issues in input stream.")
}

func TestScanCommand_SingleFileWithDiff(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.yaml": "a: 1 \n"})

	out, err := execute(t, "", "--workspace", dir, "scan", filepath.Join(dir, "app.yaml"), "--diff", "--diff-mode", "inline")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Proposed changes for")
	assert.Contains(t, out, "+a: 1")
}

func TestScanCommand_InvalidFlags(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "", "--workspace", dir, "scan", dir, "--output", "xml")
	require.Error(t, err)
	assert.Equal(t, -1, exitCode(err))
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = execute(t, "", "--workspace", dir, "scan", dir, "--diff-mode", "wide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diff mode")

	_, err = execute(t, "", "--workspace", dir, "--log-level", "loud", "scan", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")

	_, err = execute(t, "", "scan")
	assert.Error(t, err, "scan requires a path")
}

func TestScanCommand_UncreatableWorkspaceIsFatal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	manifests := writeTree(t, map[string]string{"m.yaml": "kind: Pod\n"})

	for _, command := range []string{"scan", "heal"} {
		out, err := execute(t, "", "--workspace", filepath.Join(blocker, "ws"), command, manifests)
		require.Error(t, err, command)

		var wsErr *domain.WorkspaceCreationError
		assert.True(t, errors.As(err, &wsErr), command)
		assert.Equal(t, -1, exitCode(err))
		assert.Empty(t, out, "nothing is scanned before the workspace exists")
	}
}

func TestScanCommand_CreatesMissingWorkspace(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "fresh", "ws")
	manifests := writeTree(t, map[string]string{"m.yaml": "kind: Pod\n"})

	_, err := execute(t, "", "--workspace", ws, "scan", manifests)
	require.NoError(t, err)

	info, statErr := os.Stat(ws)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}
