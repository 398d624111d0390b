package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
server:
  port: 9000
database:
  driver: mysql
  host: db
jwt:
  secret: s3cret
link:
  scheme: notes
client:
  latest_version: "2.1.0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 24*7, cfg.JWT.ExpireHours)
	assert.Equal(t, "notes", cfg.LinkScheme())
	assert.Equal(t, "2.1.0", cfg.Client.LatestVersion)
}

func TestLoad_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "jwt:\n  secret: public\n")
	writeFile(t, dir, "config.local.yaml", "jwt:\n  secret: private\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "private", cfg.JWT.Secret)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "xbb.db3", cfg.Database.Path)
	assert.Equal(t, DefaultLinkScheme, cfg.LinkScheme())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "18080")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 18080, cfg.Server.Port)
}

func TestLinkScheme_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Equal(t, DefaultLinkScheme, cfg.LinkScheme())
}
