package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 8000, cfg.Web.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "channelhub.yml")
	content := `
system:
  workdir: /tmp/channelhub
  seed_demo: true
web:
  port: 9090
database:
  type: postgres
  name: channels
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o600))

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/channelhub", cfg.System.Workdir)
	assert.True(t, cfg.System.SeedDemo)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "channels", cfg.Database.Name)
	// untouched keys keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "/tmp/channelhub/logs", cfg.GetLogDir())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CHANNELS_WEB_PORT", "8181")
	t.Setenv("CHANNELS_DB_TYPE", "postgres")
	t.Setenv("CHANNELS_DB_DEBUG", "true")
	t.Setenv("CHANNELS_SYSTEM_SEED_DEMO", "not-a-bool")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.True(t, cfg.Database.Debug)
	assert.False(t, cfg.System.SeedDemo)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfigBadYAML(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfile, []byte("web: ["), 0o600))
	_, err := LoadConfig(cfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfigDoesNotMutateDefaults(t *testing.T) {
	t.Setenv("CHANNELS_WEB_PORT", "7000")
	_, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8000, DefaultAppConfig.Web.Port)
}
