package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultDomainSuffix, cfg.Dashboard.DomainSuffix)
	assert.Equal(t, 10*time.Second, cfg.Ledger.Timeout())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
ledger:
  base_url: http://ledger.local:5000
  timeout_secs: 4
dashboard:
  domain_suffix: .chain
  settle_timeout_secs: 1
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "http://ledger.local:5000", cfg.Ledger.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.Ledger.Timeout())
	assert.Equal(t, ".chain", cfg.Dashboard.DomainSuffix)
	assert.Equal(t, time.Second, cfg.Dashboard.SettleTimeout())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPollInterval(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg.Dashboard.PollInterval())

	t.Setenv("POLL_INTERVAL", "15")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Dashboard.PollInterval())

	t.Setenv("POLL_INTERVAL", "-1")
	_, err = Load("")
	assert.Error(t, err)
}
