package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stagehand/config"
	"stagehand/core"
)

func buildConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StartDate:     "2024-03-04",
		Days:          14,
		Scale:         1.0,
		Seed:          7,
		Parallelism:   4,
		OutputDir:     t.TempDir(),
		Sources:       []string{"all"},
		Scenarios:     []string{"all"},
		SourceTimeout: time.Minute,
	}
}

func TestBuild_AssemblesFullRun(t *testing.T) {
	cfg := buildConfig(t)
	run, err := Build(cfg, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	assert.Len(t, run.Sources, len(core.AllSources()))
	assert.Len(t, run.Active, 4)
	assert.NotNil(t, run.Runner)
	assert.NotNil(t, run.Grid)
	assert.NotNil(t, run.Company)
}

func TestBuild_SubsetFiltersScenarios(t *testing.T) {
	cfg := buildConfig(t)
	cfg.Sources = []string{"badge"}
	cfg.Scenarios = []string{"attack"}

	run, err := Build(cfg, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	// Only the insider scenario touches badge readers.
	require.Len(t, run.Active, 1)
	assert.Equal(t, "insider-exfil", run.Active[0].Name)
	assert.Equal(t, []core.SourceID{core.SourceBadge}, run.Sources)
}

func TestBuild_RejectsUnknownSource(t *testing.T) {
	cfg := buildConfig(t)
	cfg.Sources = []string{"mainframe"}

	_, err := Build(cfg, zaptest.NewLogger(t).Sugar())
	assert.Error(t, err)
}

func TestBuild_AppliesScenarioOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	body := `
scenarios:
  - name: volumetric-ddos
    enabled: false
  - name: failing-disk
    start_day: 2
    end_day: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := buildConfig(t)
	cfg.ScenarioFile = path
	run, err := Build(cfg, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, def := range run.Active {
		names[def.Name] = true
	}
	assert.False(t, names["volumetric-ddos"], "disabled scenario must not activate")

	disk, ok := run.Registry.Lookup("failing-disk")
	require.True(t, ok)
	assert.Equal(t, 2, disk.StartDay)
	assert.Equal(t, 5, disk.EndDay)
}
