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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/hotel.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/hotel.db", cfg.Database.Path)
	assert.Equal(t, "hotelier", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
app:
  name: hotelier
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "database path is required")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("HOTEL_DB_PATH", "/var/lib/hotelier/hotel.db")

	path := writeConfig(t, `
database:
  path: ${HOTEL_DB_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/hotelier/hotel.db", cfg.Database.Path)
}

func TestLoad_AuthRequiresKeys(t *testing.T) {
	path := writeConfig(t, `
database:
  path: hotel.db
api:
  auth:
    enabled: true
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "no api keys configured")
}

func TestLoad_SyncRequiresCredentials(t *testing.T) {
	path := writeConfig(t, `
database:
  path: hotel.db
sync:
  enabled: true
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "google.credentials_file")
}

func TestSyncPollInterval(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "2s", cfg.SyncPollInterval().String())

	cfg.Sync.PollInterval = "500ms"
	assert.Equal(t, "500ms", cfg.SyncPollInterval().String())

	cfg.Sync.PollInterval = "garbage"
	assert.Equal(t, "2s", cfg.SyncPollInterval().String())
}
