package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvURLTemplate, "")
	t.Setenv(EnvSourceDir, "")

	cfg, info, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.FileFound)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFrom_TomlAndEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvURLTemplate, "")
	t.Setenv(EnvSourceDir, "/srv/reports")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
port = 8080

[fetch]
concurrency = 0
sheet_name = "Scoring"

[pipeline]
metrics = ["SSNAP score", "Case ascertainment band"]

[schedule]
cron = "0 3 * * 1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, info, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, info.FileFound)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Scoring", cfg.Fetch.SheetName)
	// 非法并发数回退默认值
	assert.Equal(t, 4, cfg.Fetch.Concurrency)
	assert.Equal(t, []string{"SSNAP score", "Case ascertainment band"}, cfg.Pipeline.Metrics)
	assert.Equal(t, "0 3 * * 1", cfg.Schedule.Cron)
	assert.Equal(t, "/srv/reports", cfg.Fetch.SourceDir)
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport="), 0644))

	_, _, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestEnsureDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dataDir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.DataDir, dataDir)
	for _, sub := range subdirs {
		assert.DirExists(t, filepath.Join(dataDir, sub))
	}
	assert.Equal(t, filepath.Join(dataDir, "exports", "overview.xlsx"), ExportPath(cfg, dataDir))
	assert.Equal(t, filepath.Join(dataDir, "strokedash.db"), DBPath(dataDir))
}
