package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ModeLive, cfg.Mode)
	require.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	require.Equal(t, 30*time.Second, cfg.BackendTimeout())
	require.Equal(t, "validator.db", cfg.DB.Path)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, 5*time.Second, cfg.PollInterval())
	require.Equal(t, 3*time.Second, cfg.SimulateDelay())
	require.False(t, cfg.Simulation())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
mode: simulation
backend:
  base_url: https://api.example.com
  timeout_seconds: 10
transport:
  mode: http
server:
  host: 0.0.0.0
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, cfg.Simulation())
	require.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	require.Equal(t, 10*time.Second, cfg.BackendTimeout())
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, 9000, cfg.Server.Port)
	// Untouched sections keep their defaults
	require.Equal(t, "validator.db", cfg.DB.Path)
}

func TestLoad_MissingFileIsOK(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, ModeLive, cfg.Mode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VALIDATOR_MODE", "simulation")
	t.Setenv("VALIDATOR_BACKEND__BASE_URL", "https://env.example.com")
	t.Setenv("VALIDATOR_WATCHER__POLL_INTERVAL_SECONDS", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	require.True(t, cfg.Simulation())
	require.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	require.Equal(t, 2*time.Second, cfg.PollInterval())
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("VALIDATOR_MODE", "hybrid")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown mode")
}

func TestLoad_InvalidTransport(t *testing.T) {
	t.Setenv("VALIDATOR_TRANSPORT__MODE", "grpc")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown transport mode")
}
