package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, GatewayModeREST, cfg.Gateway.Mode)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSec)
	assert.Equal(t, int64(10<<20), cfg.Attachments.MaxUploadBytes)
	assert.Equal(t, 3600, cfg.Attachments.SignedURLTTLSec)
	assert.Equal(t, StatusTaskCompleted, cfg.Tasks.CompletedStatusID)
	assert.Equal(t, 50, cfg.Display.PageSize)
	assert.False(t, cfg.Mutation.CascadeDeletes)
}

func TestLoadConfigEnvOverridesGateway(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.supabase.co", cfg.Gateway.URL)
	assert.Equal(t, "anon-key", cfg.Gateway.APIKey)
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Gateway.Mode = GatewayModeLocal
	cfg.Gateway.APIKey = "secret"
	cfg.Local.DBPath = "/tmp/h.db"
	cfg.User.Name = "tanaka"
	cfg.Mutation.CascadeDeletes = true

	require.NoError(t, SaveConfig(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, GatewayModeLocal, loaded.Gateway.Mode)
	assert.Equal(t, "/tmp/h.db", loaded.Local.DBPath)
	assert.Equal(t, "tanaka", loaded.User.Name)
	assert.True(t, loaded.Mutation.CascadeDeletes)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
