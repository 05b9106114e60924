package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "api-key", cfg.Source.ApiKeyHeader)
	assert.Equal(t, "research-outputs", cfg.Source.RecordsPath)
	assert.Equal(t, "api/records", cfg.Destination.RecordsPath)
	assert.Equal(t, 7, cfg.Sync.LookbackDays)
	assert.Equal(t, "ResearchOutput", cfg.Sync.RecordKind)
	assert.Equal(t, "data/successful_changes.txt", cfg.Checkpoint.Path)
	assert.Equal(t, 100, cfg.Checkpoint.MaxLines)
	assert.False(t, cfg.Reports.Enabled)
	assert.Equal(t, 30, cfg.Reports.KeepDays)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_LOOKBACK_DAYS", "3")
	t.Setenv("SOURCE_BASE_URL", "https://catalog.example.org/ws/api")
	t.Setenv("REPORTS_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Sync.LookbackDays)
	assert.Equal(t, "https://catalog.example.org/ws/api", cfg.Source.BaseURL)
	assert.True(t, cfg.Reports.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DESTINATION_TOKEN=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DESTINATION_TOKEN") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Destination.Token)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "sync:\n  lookback_days: 14\n  record_kind: Dataset\nsource:\n  base_url: https://from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(yaml), 0o600))
	t.Setenv("SYNC_RECORD_KIND", "ResearchOutput")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Sync.LookbackDays)
	assert.Equal(t, "https://from-file", cfg.Source.BaseURL)
	// environment wins over the file
	assert.Equal(t, "ResearchOutput", cfg.Sync.RecordKind)
	// untouched keys keep their defaults
	assert.Equal(t, 100, cfg.Checkpoint.MaxLines)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("sync: [unclosed\n"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Source.BaseURL = "https://catalog"
	cfg.Destination.BaseURL = "https://repository"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(*Config) {}, ""},
		{"Missing source", func(c *Config) { c.Source.BaseURL = "" }, "source.base_url is required"},
		{"Missing destination", func(c *Config) { c.Destination.BaseURL = " " }, "destination.base_url is required"},
		{"Zero lookback", func(c *Config) { c.Sync.LookbackDays = 0 }, "sync.lookback_days must be at least 1"},
		{"Short checkpoint", func(c *Config) { c.Checkpoint.MaxLines = 3 }, "checkpoint.max_lines (3) must be at least sync.lookback_days (7)"},
		{"Unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, `database.driver must be mysql or sqlite, got "oracle"`},
		{"Reports without bucket", func(c *Config) { c.Reports.Enabled = true; c.Storage.Bucket = "" }, "storage.bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
