package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvactools/psychro/pkg/units"
)

const sampleYAML = `
server:
  listen-addr: 127.0.0.1
  port: 9090
defaults:
  unit-system: IP
  pressure: 14.696
logging:
  debug: true
  log-file: /var/log/psychro.log
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "psychro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLProvider(t *testing.T) {
	provider := NewYAMLProvider(writeYAML(t, sampleYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.ListenAddr)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 14.696, cfg.Defaults.Pressure)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/var/log/psychro.log", cfg.Logging.LogFile)
	assert.True(t, provider.IsReadOnly())

	sys, err := cfg.Defaults.System()
	require.NoError(t, err)
	assert.Equal(t, units.IP, sys)
}

func TestYAMLProviderDefaultsToSI(t *testing.T) {
	provider := NewYAMLProvider(writeYAML(t, "server:\n  port: 8080\n"))
	defer provider.Close()

	defaults, err := provider.GetDefaults()
	require.NoError(t, err)

	sys, err := defaults.System()
	require.NoError(t, err)
	assert.Equal(t, units.SI, sys)
}

func TestYAMLProviderRejectsBadUnitSystem(t *testing.T) {
	provider := NewYAMLProvider(writeYAML(t, "defaults:\n  unit-system: metric\n"))
	defer provider.Close()

	_, err := provider.LoadConfig()
	assert.ErrorContains(t, err, "unknown unit system")
}

func TestYAMLProviderRejectsLoneTLSCert(t *testing.T) {
	provider := NewYAMLProvider(writeYAML(t, "server:\n  tls-cert: /etc/ssl/cert.pem\n"))
	defer provider.Close()

	_, err := provider.LoadConfig()
	assert.ErrorContains(t, err, "tls-cert")
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := provider.LoadConfig()
	assert.Error(t, err)
}

func TestSQLiteProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psychro.db")
	provider, err := NewSQLiteProvider(path)
	require.NoError(t, err)
	defer provider.Close()

	assert.False(t, provider.IsReadOnly())

	// A fresh database yields zero-value settings.
	cfg, err := provider.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Server.Port)
	assert.Equal(t, 0.0, cfg.Defaults.Pressure)

	require.NoError(t, provider.SetSetting("server.listen-addr", "0.0.0.0"))
	require.NoError(t, provider.SetSetting("server.port", "8080"))
	require.NoError(t, provider.SetSetting("defaults.unit-system", "SI"))
	require.NoError(t, provider.SetSetting("defaults.pressure", "101325"))
	require.NoError(t, provider.SetSetting("logging.debug", "true"))

	cfg, err = provider.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.ListenAddr)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 101325.0, cfg.Defaults.Pressure)
	assert.True(t, cfg.Logging.Debug)

	// Settings are upserted, not duplicated.
	require.NoError(t, provider.SetSetting("server.port", "9000"))
	server, err := provider.GetServer()
	require.NoError(t, err)
	assert.Equal(t, 9000, server.Port)
}

func TestSQLiteProviderRejectsMalformedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psychro.db")
	provider, err := NewSQLiteProvider(path)
	require.NoError(t, err)
	defer provider.Close()

	require.NoError(t, provider.SetSetting("server.port", "not-a-port"))
	_, err = provider.LoadConfig()
	assert.ErrorContains(t, err, "server.port")
}
