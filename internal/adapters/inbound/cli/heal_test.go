package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealCommand_WritesAndBacksUp(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.yaml": "kind: Pod\t\n"})

	out, err := execute(t, "", "--workspace", dir, "heal", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Healed 1 files")

	data, readErr := os.ReadFile(filepath.Join(dir, "app.yaml"))
	require.NoError(t, readErr)
	assert.Equal(t, "kind: Pod\n", string(data))

	backup, readErr := os.ReadFile(filepath.Join(dir, "app.akeso.backup"))
	require.NoError(t, readErr)
	assert.Equal(t, "kind: Pod\t\n", string(backup))
}

func TestHealCommand_NoBackup(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.yaml": "kind: Pod"})

	_, err := execute(t, "", "--workspace", dir, "heal", dir, "--no-backup")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "app.akeso.backup"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestHealCommand_DryRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.yaml": "kind: Pod"})

	out, err := execute(t, "", "--workspace", dir, "heal", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would heal 1 files")

	data, readErr := os.ReadFile(filepath.Join(dir, "app.yaml"))
	require.NoError(t, readErr)
	assert.Equal(t, "kind: Pod", string(data))
}

func TestHealCommand_FailingFileExitsOne(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.yaml": "image: nginx\nimage: redis\nimage: busybox:latest\nimage: envoy\n",
	})

	_, err := execute(t, "", "--workspace", dir, "heal", dir)
	assert.Equal(t, 1, exitCode(err))
}

func TestHealCommand_StreamIsAFilter(t *testing.T) {
	out, err := execute(t, "a: 1  \nb: 2", "--workspace", t.TempDir(), "heal", "-")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2\n", out)
}
