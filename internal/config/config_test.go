package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDSN, EnvAddr, EnvPort, EnvStaticDir, EnvLogLevel, EnvLogFormat, EnvCORSOrigin} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "stagetrack.db", filepath.Base(cfg.DSN))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_NoSourcesGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_YAMLOverlaysDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stagetrack.yml"), "db: \":memory:\"\nlogFormat: json\n")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DSN)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":3000", cfg.Addr, "keys absent from the file keep their defaults")
}

func TestLoadFrom_ExplicitConfigPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "addr: \"127.0.0.1:9000\"\n")

	cfg, err := LoadFrom(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
}

func TestLoadFrom_MissingExplicitConfigFails(t *testing.T) {
	clearEnv(t)
	_, err := LoadFrom(t.TempDir(), filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoadFrom_MalformedYAMLFails(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stagetrack.yml"), "db: [unterminated\n")

	_, err := LoadFrom(dir, "")
	assert.ErrorContains(t, err, "parsing")
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stagetrack.yml"), "addr: \":4000\"\nstaticDir: web\n")
	t.Setenv(EnvAddr, ":5000")
	t.Setenv(EnvStaticDir, "site")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "site", cfg.StaticDir)
}

func TestLoadFrom_PortAndAddrPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "8080")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)

	t.Setenv(EnvAddr, "0.0.0.0:9090")
	cfg, err = LoadFrom(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
}

func TestLoadFrom_EmptyCORSOriginDisablesCORS(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCORSOrigin, "")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.CORSOrigin)
}

func TestLoadFrom_DotEnvDoesNotOverrideRealEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), EnvLogLevel+"=debug\n"+EnvDSN+"=from-dotenv.db\n")
	t.Setenv(EnvDSN, "from-env.db")
	// godotenv sets what it loads in the process environment.
	t.Cleanup(func() { os.Unsetenv(EnvLogLevel) })

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-env.db", cfg.DSN)
}

func TestLoadFrom_InvalidLogLevelFails(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "loud")

	_, err := LoadFrom(t.TempDir(), "")
	assert.ErrorContains(t, err, "log level")
}

func TestLoadFrom_InvalidLogFormatFails(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogFormat, "xml")

	_, err := LoadFrom(t.TempDir(), "")
	assert.ErrorContains(t, err, "log format")
}

func TestApplyFlags_OnlyChangedFlagsApply(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagDSN, "flag-default.db", "")
	fs.String(FlagAddr, "", "")
	fs.String(FlagLogLevel, "", "")
	require.NoError(t, fs.Parse([]string{"--addr", ":7000", "--log-level", "warn"}))

	cfg := Default()
	dsn := cfg.DSN
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, dsn, cfg.DSN, "unset flag defaults must not override")
}

func TestApplyFlags_ValidatesResult(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagLogFormat, "", "")
	require.NoError(t, fs.Parse([]string{"--log-format", "yaml"}))

	cfg := Default()
	assert.Error(t, cfg.ApplyFlags(fs))
}
