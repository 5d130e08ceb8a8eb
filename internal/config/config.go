// Package config loads Muse configuration from defaults, an optional YAML
// file, a .env file and MUSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	muserrors "github.com/manav03panchal/muse/internal/errors"
)

// AppName names the config and data directories.
const AppName = "muse"

// EnvPrefix is the prefix for environment overrides (MUSE_DATA_DIR, ...).
const EnvPrefix = "MUSE"

// Pool variants.
const (
	VariantRich    = "rich"
	VariantMinimal = "minimal"
)

// Config holds the resolved configuration.
type Config struct {
	// DataDir holds favorites.json and the session database.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	// FavoritesFile overrides DataDir/favorites.json.
	FavoritesFile string `mapstructure:"favorites_file" yaml:"favorites_file" json:"favorites_file"`
	// SessionDir overrides DataDir/session.
	SessionDir string `mapstructure:"session_dir" yaml:"session_dir" json:"session_dir"`
	// PoolsFile is an optional YAML file replacing the built-in phrase pools.
	PoolsFile string `mapstructure:"pools_file" yaml:"pools_file" json:"pools_file"`
	// PoolVariant selects the built-in pools: rich or minimal.
	PoolVariant string `mapstructure:"pool_variant" yaml:"pool_variant" json:"pool_variant"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed" yaml:"seed" json:"seed"`
	// MinFreeSpace is the free space in bytes required before writing favorites.
	MinFreeSpace uint64 `mapstructure:"min_free_space" yaml:"min_free_space" json:"min_free_space"`

	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json" json:"json"`
}

// DefaultDataDir returns the default data directory under the XDG base directories.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfigPath returns the default config file path under the XDG base directories.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      DefaultDataDir(),
		PoolVariant:  VariantRich,
		MinFreeSpace: 1024 * 1024,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// FavoritesPath returns the favorites file location.
func (c *Config) FavoritesPath() string {
	if c.FavoritesFile != "" {
		return c.FavoritesFile
	}
	return filepath.Join(c.DataDir, "favorites.json")
}

// SessionPath returns the session database directory.
func (c *Config) SessionPath() string {
	if c.SessionDir != "" {
		return c.SessionDir
	}
	return filepath.Join(c.DataDir, "session")
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" && (c.FavoritesFile == "" || c.SessionDir == "") {
		return muserrors.NewConfigError("data_dir", "must not be empty", nil)
	}
	switch c.PoolVariant {
	case VariantRich, VariantMinimal:
	default:
		return muserrors.NewConfigError("pool_variant",
			fmt.Sprintf("unknown variant %q (use %s or %s)", c.PoolVariant, VariantRich, VariantMinimal), nil)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return muserrors.NewConfigError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level), nil)
	}
	return nil
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	v         *viper.Viper
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// cfgFile may be empty to use the default location; a missing default file
// is not an error.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	v := cm.v
	defaults := DefaultConfig()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("favorites_file", defaults.FavoritesFile)
	v.SetDefault("session_dir", defaults.SessionDir)
	v.SetDefault("pools_file", defaults.PoolsFile)
	v.SetDefault("pool_variant", defaults.PoolVariant)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("min_free_space", defaults.MinFreeSpace)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.json", defaults.Log.JSON)

	// Environment variables with MUSE_ prefix; log.level -> MUSE_LOG_LEVEL
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Dir(DefaultConfigPath()))
	}

	// Try to read config file (not required unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}
		return muserrors.NewConfigError("config", "error reading config file", err)
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, muserrors.NewConfigError("config", "failed to unmarshal config", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFileUsed returns the config file that was read, or "".
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

// Value returns the resolved value for a dotted key such as "log.level",
// and whether the key is known.
func (cm *Manager) Value(key string) (interface{}, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !cm.v.IsSet(key) {
		return nil, false
	}
	return cm.v.Get(key), true
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. It does nothing when
// no config file was read. Invalid edits are ignored.
func (cm *Manager) WatchConfig() {
	if cm.v.ConfigFileUsed() == "" {
		return
	}
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// LoadDotEnv loads environment variables from the given .env files, or from
// ./.env when none are given. Missing files are skipped; variables already
// set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return muserrors.NewConfigError("env", "error loading "+p, err)
		}
	}
	return nil
}

// ErrConfigExists is returned by WriteDefault when the file is present.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return ErrConfigExists
		}
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return muserrors.NewSystemErrorWithOp("config init", "failed to create config directory", err)
	}

	header := []byte(`# Muse configuration
# Every key can be overridden with a MUSE_ environment variable,
# e.g. MUSE_POOL_VARIANT=minimal or MUSE_LOG_LEVEL=debug.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
