package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lunamon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mqtt:
  listenAddr: ":1884"
sources:
  tcp:
    - "192.168.1.50:10110"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":1884", cfg.MQTT.ListenAddr)
	require.Equal(t, 8, cfg.MQTT.MaxClients)
	require.Equal(t, []string{"192.168.1.50:10110"}, cfg.Sources.TCP)
	require.Equal(t, 10*time.Second, cfg.Sensors.PollInterval)
	require.Equal(t, 64, cfg.Navaid.MaxTracked)
	require.Equal(t, ":9090", cfg.Metrics.ListenAddr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
