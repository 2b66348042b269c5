package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Analysis.SampleSize)
	assert.Equal(t, "data", cfg.Analysis.FilePrefix)
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "popcli.yaml")

	content := `
server:
  port: 9090
analysis:
  file_prefix: loans
  exclude_columns:
    - branch_code
    - batch_no
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "loans", cfg.Analysis.FilePrefix)
	assert.Equal(t, []string{"branch_code", "batch_no"}, cfg.Analysis.ExcludeColumns)
	// Untouched sections keep their defaults
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "popcli.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("POP_SERVER_PORT", "7070")

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid port", "server:\n  port: -1\n"},
		{"invalid log level", "logging:\n  level: verbose\n"},
		{"invalid log output", "logging:\n  output: syslog\n"},
		{"zero sample size", "analysis:\n  sample_size: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "popcli.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.content), 0644))

			_, err := Load(configFile)
			assert.Error(t, err)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.ReportsDir = filepath.Join(dir, "reports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Paths.DBPath = filepath.Join(dir, "db", "popcli.db")

	require.NoError(t, cfg.EnsureDirectories())

	for _, d := range []string{cfg.Paths.DataDir, cfg.Paths.ReportsDir, cfg.Paths.LogsDir, filepath.Dir(cfg.Paths.DBPath)} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGetPaths(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("reports", "r.csv"), cfg.GetReportPath("r.csv"))
	assert.Equal(t, filepath.Join("data", "d.xlsx"), cfg.GetDataPath("d.xlsx"))
	assert.Equal(t, filepath.Join("logs", "app.log"), cfg.GetLogPath("app.log"))
}
