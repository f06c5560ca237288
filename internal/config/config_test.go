package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/shop.db
  seed: false
logger:
  mode: production
web:
  addr: 127.0.0.1:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shop.db", cfg.Database.Path)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.Equal(t, "127.0.0.1:9000", cfg.Web.Addr)
	// untouched sections keep defaults
	assert.Equal(t, "Aluno", cfg.Session.WelcomeName)
	assert.Equal(t, "session.db", cfg.Session.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "database:\n  path: from-file.db\n")
	t.Setenv("CATALOG_DATABASE_PATH", "from-env.db")
	t.Setenv("CATALOG_SESSION_WELCOME_PASSWORD", "s3cret")
	t.Setenv("CATALOG_LOGGER_FILE_ENABLE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Session.WelcomePassword)
	assert.True(t, cfg.Logger.FileEnable)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "databse:\n  path: x.db\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_SEED", "maybe")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"default", func(*Config) {}, ""},
		{"no db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"no session path", func(c *Config) { c.Session.Path = "" }, "session.path"},
		{"bad mode", func(c *Config) { c.Logger.Mode = "loud" }, "logger.mode"},
		{"file without name", func(c *Config) {
			c.Logger.FileEnable = true
			c.Logger.Filename = ""
		}, "logger.filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
