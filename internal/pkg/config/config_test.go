package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("TRACKING_NODE_ID", "node-a")

	cfg := InitConfig("")

	assert.Equal(t, 9990, cfg.Server.Port)
	assert.Equal(t, 50.0, cfg.Tracking.ThresholdMeters)
	assert.Equal(t, 5*time.Second, cfg.Tracking.AckTimeout)
	assert.Equal(t, 64, cfg.Tracking.SendBuffer)
	assert.Equal(t, 8, cfg.Tracking.Workers)
	assert.Equal(t, "node-a", cfg.Tracking.NodeID)
	assert.False(t, cfg.Tracking.RelayEnabled)
}

func TestInitConfig_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracking.env")
	require.NoError(t, os.WriteFile(path, []byte("TRACKING_THRESHOLD_METERS=75\nSERVER_PORT=8081\n"), 0o600))

	t.Setenv("APP_ENV", "local")
	// godotenv never overrides variables that already exist
	t.Setenv("TRACKING_THRESHOLD_METERS", "")
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("TRACKING_THRESHOLD_METERS")
	os.Unsetenv("SERVER_PORT")

	cfg := InitConfig(path)

	assert.Equal(t, 75.0, cfg.Tracking.ThresholdMeters)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("DUR_GO", "250ms")
	t.Setenv("DUR_SECONDS", "3")
	t.Setenv("DUR_BAD", "soon")

	assert.Equal(t, 250*time.Millisecond, GetEnvAsDuration("DUR_GO", time.Second))
	assert.Equal(t, 3*time.Second, GetEnvAsDuration("DUR_SECONDS", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("DUR_BAD", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("DUR_MISSING", time.Second))
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("INT_BAD", "x")
	assert.Equal(t, 7, GetEnvAsInt("INT_BAD", 7))
}
