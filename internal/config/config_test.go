package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	muserrors "github.com/manav03panchal/muse/internal/errors"
)

// =============================================================================
// Defaults
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, VariantRich, cfg.PoolVariant)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, AppName, filepath.Base(cfg.DataDir))
	assert.NoError(t, cfg.Validate())
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data/muse"}
	assert.Equal(t, filepath.Join("/data/muse", "favorites.json"), cfg.FavoritesPath())
	assert.Equal(t, filepath.Join("/data/muse", "session"), cfg.SessionPath())

	cfg.FavoritesFile = "/elsewhere/favs.json"
	cfg.SessionDir = "/elsewhere/session"
	assert.Equal(t, "/elsewhere/favs.json", cfg.FavoritesPath())
	assert.Equal(t, "/elsewhere/session", cfg.SessionPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"bad_variant", func(c *Config) { c.PoolVariant = "huge" }, "pool_variant"},
		{"bad_level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty_data_dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			ce, ok := muserrors.AsConfigError(err)
			require.True(t, ok)
			assert.Equal(t, tt.key, ce.Key)
		})
	}
}

// =============================================================================
// Manager
// =============================================================================

func TestNewManager(t *testing.T) {
	t.Run("loads_from_config_file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
data_dir: ` + tmpDir + `
pool_variant: minimal
seed: 42
log:
  level: debug
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cm, err := NewManager(configFile)
		require.NoError(t, err)

		cfg := cm.Get()
		assert.Equal(t, tmpDir, cfg.DataDir)
		assert.Equal(t, VariantMinimal, cfg.PoolVariant)
		assert.Equal(t, uint64(42), cfg.Seed)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, configFile, cm.ConfigFileUsed())
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("pool_variant: minimal\n"), 0o644))

		t.Setenv("MUSE_POOL_VARIANT", "rich")
		t.Setenv("MUSE_LOG_LEVEL", "error")
		t.Setenv("MUSE_SEED", "7")

		cm, err := NewManager(configFile)
		require.NoError(t, err)
		cfg := cm.Get()
		assert.Equal(t, VariantRich, cfg.PoolVariant)
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, uint64(7), cfg.Seed)
	})

	t.Run("missing_explicit_file_fails", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		_, ok := muserrors.AsConfigError(err)
		assert.True(t, ok)
	})

	t.Run("invalid_value_fails", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("pool_variant: enormous\n"), 0o644))

		_, err := NewManager(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pool_variant")
	})
}

func TestOnChange(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("seed: 1\n"), 0o644))

	cm, err := NewManager(configFile)
	require.NoError(t, err)

	var got *Config
	cm.OnChange(func(c *Config) { got = c })
	assert.Len(t, cm.callbacks, 1)
	assert.Nil(t, got)
}

func TestManagerValue(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("pool_variant: minimal\n"), 0o644))

	cm, err := NewManager(configFile)
	require.NoError(t, err)

	v, ok := cm.Value("pool_variant")
	require.True(t, ok)
	assert.Equal(t, VariantMinimal, v)

	v, ok = cm.Value(" Log.Level ")
	require.True(t, ok)
	assert.Equal(t, "warn", v)

	_, ok = cm.Value("no_such_key")
	assert.False(t, ok)
}

// =============================================================================
// Files
// =============================================================================

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Muse configuration")
	assert.Contains(t, string(data), "pool_variant: rich")

	err = WriteDefault(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	assert.NoError(t, WriteDefault(path, true))

	cm, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().PoolVariant, cm.Get().PoolVariant)
	assert.Equal(t, DefaultConfig().MinFreeSpace, cm.Get().MinFreeSpace)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing_file_is_skipped", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets_variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MUSE_TEST_DOTENV=hello\n"), 0o644))
		t.Setenv("MUSE_TEST_DOTENV", "")
		os.Unsetenv("MUSE_TEST_DOTENV")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "hello", os.Getenv("MUSE_TEST_DOTENV"))
	})

	t.Run("existing_env_wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MUSE_TEST_DOTENV_KEEP=file\n"), 0o644))
		t.Setenv("MUSE_TEST_DOTENV_KEEP", "shell")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "shell", os.Getenv("MUSE_TEST_DOTENV_KEEP"))
	})
}
