package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys recognized in the config file and environment.
const (
	KeyDefaultSource  = "default_source"
	KeyDefaultTargets = "default_targets"
	KeyUseSymlinks    = "use_symlinks"
	KeyStateDB        = "state_db"
)

// Dir returns the path to the config directory (~/.aicsync/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.aicsync/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// StateDBPath returns the state database location for a project root
// (<root>/.aicsync/state.db). A state_db config value or the
// AICSYNC_STATE_DB environment variable overrides it.
func StateDBPath(projectRoot string) string {
	if p := viper.GetString(KeyStateDB); p != "" {
		return p
	}
	return filepath.Join(projectRoot, branding.HomeDir(), "state.db")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyDefaultSource, "claude")
	viper.SetDefault(KeyUseSymlinks, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
