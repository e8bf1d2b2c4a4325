package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestDefaultConfig(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "readingList", cfg.Storage.Key)
	assert.Equal(t, filepath.Join(dir, "data", "shelf", "readinglist.json"), cfg.Storage.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "shelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  endpoint: https://catalog.example/graphql
  timeout: 5s
  headers:
    Authorization: Bearer $CATALOG_TOKEN
storage:
  backend: bolt
  path: /tmp/shelf.db
log:
  format: json
`), 0644))
	t.Setenv("CATALOG_TOKEN", "s3cret")
	t.Setenv("SHELF_STORAGE_KEY", "kids")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.example/graphql", cfg.Catalog.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "Bearer s3cret", cfg.Catalog.Headers["authorization"])
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, "kids", cfg.Storage.Key)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Storage.Backend = "redis"
	assert.ErrorContains(t, cfg.Validate(), "storage.backend")

	cfg = DefaultConfig()
	cfg.Catalog.Endpoint = ""
	assert.ErrorContains(t, cfg.Validate(), "catalog")

	cfg = DefaultConfig()
	cfg.Catalog.Endpoint = ""
	cfg.Catalog.Files = "catalog/*.yaml"
	assert.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log.format")

	cfg = DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Storage.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "out", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.Endpoint = "https://books.example/"
	require.NoError(t, Save(cfg, path, false))
	assert.Error(t, Save(cfg, path, false), "refuses to overwrite")
	require.NoError(t, Save(cfg, path, true))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
