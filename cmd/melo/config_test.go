package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8686", cfg.HTTP.Addr)
	assert.NotEmpty(t, cfg.Settings.Path)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: 0.0.0.0:9000
settings:
  path: /var/lib/melo/settings.cbor
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr)
	assert.Equal(t, "/var/lib/melo/settings.cbor", cfg.Settings.Path)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  path: /tmp/s.cbor\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8686", cfg.HTTP.Addr)
	assert.Equal(t, "/tmp/s.cbor", cfg.Settings.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [not a mapping"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}
