package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "https://api.igdb.com/v4", cfg.IGDB.BaseURL)
	assert.Equal(t, 4, cfg.IGDB.HTTP.RequestsPerWindow)
	assert.Equal(t, 3, cfg.IGDB.HTTP.MaxRetries)
	assert.Equal(t, []string{"https://dats.retrorealm.dev/redump/daily"}, cfg.Catalog.DownloadURLs)
	assert.Equal(t, 50, cfg.Reconcile.PageSize)
	// Zero chunk widths resolve to the CPU count at run time.
	assert.Zero(t, cfg.Reconcile.Concurrency)
	assert.Zero(t, cfg.Catalog.Concurrency)
	assert.Equal(t, "0 3 * * *", cfg.Schedule.ImportCron)
	assert.False(t, cfg.IGDB.Enabled())
	assert.False(t, cfg.Storage.Enabled())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("IGDB_CLIENT_ID", "id")
	t.Setenv("IGDB_CLIENT_SECRET", "secret")
	t.Setenv("IGDB_HTTP_MAX_RETRIES", "5")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("RECONCILE_CONCURRENCY", "8")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IGDB.Enabled())
	assert.Equal(t, 5, cfg.IGDB.HTTP.MaxRetries)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8, cfg.Reconcile.Concurrency)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nSERVER_API_KEY=k\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "k", cfg.Server.ApiKey)
}
