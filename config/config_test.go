package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "static", cfg.Data.Source)
	assert.Equal(t, 30*time.Second, cfg.GetLoadTimeout())
	assert.Equal(t, 100, cfg.Crawl.MaxPages)
	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9090
  base_url: https://news.example.com
data:
  source: file
  file: seed.yaml
  load_timeout: 5s
crawl:
  allowed_domains: [example.com]
  request_timeout: 3s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://news.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "file", cfg.Data.Source)
	assert.Equal(t, "seed.yaml", cfg.Data.File)
	assert.Equal(t, 5*time.Second, cfg.GetLoadTimeout())
	assert.Equal(t, []string{"example.com"}, cfg.Crawl.AllowedDomains)
	assert.Equal(t, 3*time.Second, cfg.GetRequestTimeout())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NEWSD_SERVER_PORT", "7070")
	t.Setenv("NEWSD_DATA_SOURCE", "sqlite")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Data.Source)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetLoadTimeoutFallback(t *testing.T) {
	var cfg Config
	cfg.Data.LoadTimeout = "soon"
	cfg.Crawl.RequestTimeout = "-1s"
	assert.Equal(t, 30*time.Second, cfg.GetLoadTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
}
