package config_test

import (
	"testing"

	"host-manager/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "host-manager", cfg.Hostvars.AuthorName)
	assert.Equal(t, "host-manager-snapshots", cfg.Snapshot.Bucket)
	assert.False(t, cfg.Snapshot.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("HOSTVARS_URL", "git@example.com:fleet/hostvar_data.git")
	t.Setenv("HOSTVARS_PATH", "/var/lib/host-manager/hostvar_data")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "git@example.com:fleet/hostvar_data.git", cfg.Hostvars.URL)
	assert.Equal(t, "/var/lib/host-manager/hostvar_data", cfg.Hostvars.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}
