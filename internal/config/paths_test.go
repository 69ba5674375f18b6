package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()

	t.Run("relative paths", func(t *testing.T) {
		p := ResolvePaths(PathsConfig{DataDir: "data", OutputDir: "out"}, base)

		assert.Equal(t, filepath.Join(base, "data"), p.DataDir)
		assert.Equal(t, filepath.Join(base, "out"), p.OutputDir)
		assert.Equal(t, filepath.Join(base, "out", "tables"), p.TablesDir)
		assert.Equal(t, filepath.Join(base, "out", "charts"), p.ChartsDir)
		assert.Equal(t, filepath.Join(base, "out", "logs"), p.LogsDir)
		assert.Equal(t, filepath.Join(base, "out", "merged.csv"), p.MergedCSV)
		assert.Equal(t, filepath.Join(base, "out", "averages.csv"), p.AveragesCSV)
		assert.Equal(t, filepath.Join(base, "out", "defense.xlsx"), p.WorkbookFile)
	})

	t.Run("absolute paths kept", func(t *testing.T) {
		charts := filepath.Join(base, "elsewhere")
		p := ResolvePaths(PathsConfig{DataDir: "/srv/data", OutputDir: "out", ChartsDir: charts}, base)

		assert.Equal(t, "/srv/data", p.DataDir)
		assert.Equal(t, charts, p.ChartsDir)
	})

	t.Run("path helpers", func(t *testing.T) {
		p := ResolvePaths(PathsConfig{DataDir: "data", OutputDir: "out"}, base)

		assert.Equal(t, filepath.Join(p.TablesDir, "postup.csv"), p.GetTablePath("postup.csv"))
		assert.Equal(t, filepath.Join(p.ChartsDir, "radar.svg"), p.GetChartPath("radar.svg"))
		assert.Equal(t, filepath.Join(p.OutputDir, "x.csv"), p.GetReportPath("x.csv"))
		assert.Equal(t, filepath.Join(p.LogsDir, "run.log"), p.GetLogPath("run.log"))
	})
}

func TestEnsureDirectories(t *testing.T) {
	p := ResolvePaths(PathsConfig{DataDir: "data", OutputDir: "out"}, t.TempDir())
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.OutputDir, p.TablesDir, p.ChartsDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.False(t, FileExists(p.MergedCSV))
}

func TestConfigGetPaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	p, err := Default().GetPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data"), p.DataDir)
	assert.Equal(t, filepath.Join(wd, "output", "charts"), p.ChartsDir)
}
