package application_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/akeso/akeso/internal/adapters/outbound/config"
	"github.com/akeso/akeso/internal/adapters/outbound/store"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
)

func TestHealService_StreamIsAFilter(t *testing.T) {
	dir := t.TempDir()
	engine := application.NewHealEngine(store.New(dir, nil), appconfig.New(nil), domain.DefaultHealOptions(), nil)
	svc := application.NewHealService(engine, reporters(), stubPresenter{}, nil)
	var out bytes.Buffer

	outcome, err := svc.Run(application.HealRequest{Path: "-"}, strings.NewReader("a: 1  \r\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", out.String())
	assert.Equal(t, 0, outcome.ExitCode)
}

func TestHealService_BatchWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy", "app.yaml")
	writeManifest(t, path, "kind: Pod  \n")

	engine := application.NewHealEngine(store.New(dir, nil), appconfig.New(nil), domain.DefaultHealOptions(), nil)
	svc := application.NewHealService(engine, reporters(), stubPresenter{}, nil)
	var out bytes.Buffer

	outcome, err := svc.Run(application.HealRequest{
		Path: dir, Extensions: domain.DefaultExtensions, MaxDepth: domain.DefaultMaxDepth, ShowDiff: true,
	}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.ExitCode)
	assert.Equal(t, "kind: Pod\n", readManifest(t, path))
	assert.Equal(t, "kind: Pod  \n", readManifest(t, filepath.Join(dir, "deploy", "app.akeso.backup")))
	assert.Contains(t, out.String(), "SUMMARY 1")
	assert.Contains(t, out.String(), "DIFF deploy/app.yaml")
	assert.Contains(t, out.String(), "HEAL 1 dryRun=false")
}

func TestHealService_DryRunPassesThrough(t *testing.T) {
	engine := &fakeEngine{records: threeRecords()}
	svc := application.NewHealService(engine, reporters(), stubPresenter{}, nil)
	var out bytes.Buffer

	outcome, err := svc.Run(application.HealRequest{Path: t.TempDir(), DryRun: true}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, []bool{true}, engine.dryRuns)
	assert.Equal(t, 1, outcome.ExitCode, "a.yaml still fails")
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t, "a.yaml", outcome.Issues[0].FilePath)
	assert.Contains(t, out.String(), "HEAL 3 dryRun=true")
}

func TestHealService_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.yaml")
	writeManifest(t, path, "a: 1\n")
	engine := &fakeEngine{}
	var out bytes.Buffer

	_, err := application.NewHealService(engine, reporters(), stubPresenter{}, nil).
		Run(application.HealRequest{Path: path}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, engine.dryRuns)
	assert.Contains(t, out.String(), "RECORD "+path)
}

func TestHealService_JSON(t *testing.T) {
	engine := &fakeEngine{records: threeRecords()}
	var out bytes.Buffer

	_, err := application.NewHealService(engine, reporters(), stubPresenter{}, nil).
		Run(application.HealRequest{Path: t.TempDir(), Output: domain.OutputJSON}, nil, &out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.NotContains(t, out.String(), "HEAL")
}
