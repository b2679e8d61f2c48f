package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/logging"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.SchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, 10, cfg.Table.Overscan)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeOverlay(t, `
schema_version: 1.2.0
table:
  overscan: 4
  toggle_cycle: asc-desc
logging:
  level: info
`)
	t.Setenv(config.EnvLogLevel, "DEBUG")
	t.Setenv(config.EnvLogFormat, "json")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Table.Overscan)
	assert.Equal(t, "asc-desc", cfg.Table.ToggleCycle)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestDefaultPath_HonoursHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "newer minor schema", mutate: func(c *config.Config) { c.SchemaVersion = "1.9.0" }},
		{name: "major schema mismatch", mutate: func(c *config.Config) { c.SchemaVersion = "2.0.0" }, wantErr: true},
		{name: "unparsable schema", mutate: func(c *config.Config) { c.SchemaVersion = "one" }, wantErr: true},
		{name: "negative overscan", mutate: func(c *config.Config) { c.Table.Overscan = -1 }, wantErr: true},
		{name: "negative row height", mutate: func(c *config.Config) { c.Table.RowHeight = -2 }, wantErr: true},
		{name: "bad cycle", mutate: func(c *config.Config) { c.Table.ToggleCycle = "shuffle" }, wantErr: true},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApplyEnv_IgnoresUnset(t *testing.T) {
	cfg := config.Default()
	cfg.ApplyEnv(func(string) (string, bool) { return "", false })

	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)

	lc.File = "/tmp/vtable.log"
	out := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, out.Output)
	assert.Equal(t, "/tmp/vtable.log", out.File)
	assert.Equal(t, "debug", out.Level)
}

func TestSave_LoadsBack(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.Table.MultiSort = true
	cfg.Table.Collation = "sv"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestZeroedDefaults(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		expect []string
	}{
		{name: "defaults", expect: nil},
		{
			name:  "partial table section",
			table: "table:\n  wrap: true\n",
			expect: []string{
				"table.overscan (default 10)",
				"table.row_height (default 1)",
				"table.max_column_width (default 40)",
			},
		},
		{
			name:   "explicit values",
			table:  "table:\n  overscan: 5\n  row_height: 2\n  max_column_width: 30\n",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.table != "" {
				require.NoError(t, config.ShallowMergeYAML(cfg, writeOverlay(t, tt.table)))
			}
			assert.Equal(t, tt.expect, cfg.ZeroedDefaults())
		})
	}
}

func TestSave_WritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Default().Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# vtable configuration."))
}
