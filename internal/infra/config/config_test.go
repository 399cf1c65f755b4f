package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.UploadTick)
	assert.Equal(t, 5, cfg.UploadStep)
	assert.Equal(t, 95, cfg.UploadCap)
	assert.Equal(t, 3*time.Second, cfg.UploadDuration)
	assert.Equal(t, 1500*time.Millisecond, cfg.URLDelay)
	assert.Equal(t, 5*time.Second, cfg.FeedInterval)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.FaultFlows)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SIM_PROCESS_DELAY", "250ms")
	t.Setenv("SIM_FAULT_FLOWS", "ADD_BROLL,GEN_VOICE")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.ProcessDelay)
	assert.Equal(t, []string{"ADD_BROLL", "GEN_VOICE"}, cfg.FaultFlows)
	assert.Equal(t, "localhost:9000", cfg.MinIOEndpoint)
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASSET_BASE_PATH=/demo_heroxshorts2\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ASSET_BASE_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/demo_heroxshorts2", cfg.AssetBasePath)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("SIM_UPLOAD_STEP", "five")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
