package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Config is the persisted user configuration.
type Config struct {
	User     User     `toml:"user"`
	Settings Settings `toml:"settings"`
}

// User identifies the local user in audit log entries.
type User struct {
	UUID string `toml:"user_uuid"`
}

// ConfigPath returns the path of the user config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "totara", "config.toml"), nil
}

// LoadConfig loads the user configuration, filling unset settings with
// defaults derived from the given environment lookup. A missing config
// file is not an error.
func LoadConfig(lookup func(string) (string, bool)) (*Config, error) {
	defaults, err := DefaultSettings(lookup)
	if err != nil {
		return nil, err
	}
	config := &Config{Settings: defaults}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.Settings = mergeSettings(config.Settings, defaults)

	// The environment override for the keydir beats the stored value.
	if dir, ok := lookup(KeydirVariable); ok && dir != "" {
		config.Settings.Keydir = dir
	}
	return config, nil
}

// SaveConfig writes the user configuration back to disk.
func SaveConfig(config *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// EnsureConfig loads the configuration and assigns the user a UUID on
// first use.
func EnsureConfig(lookup func(string) (string, bool)) (*Config, error) {
	config, err := LoadConfig(lookup)
	if err != nil {
		return nil, err
	}

	if config.User.UUID == "" {
		config.User.UUID = uuid.New().String()
		if err := SaveConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// mergeSettings fills any field left empty in the stored settings with
// its default.
func mergeSettings(stored, defaults Settings) Settings {
	if stored.Keydir == "" {
		stored.Keydir = defaults.Keydir
	}
	if stored.FilePrefix == "" {
		stored.FilePrefix = defaults.FilePrefix
	}
	if stored.FileSuffix == "" {
		stored.FileSuffix = defaults.FileSuffix
	}
	if stored.PrivateKeyVariable == "" {
		stored.PrivateKeyVariable = defaults.PrivateKeyVariable
	}
	return stored
}
