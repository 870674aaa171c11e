// Package userconfig provides user settings for sr. Settings are
// stored in ~/.secret-review/config.toml and modified via the
// `sr config` command. Credentials live in a separate file; this file
// holds only non-secret preferences.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/secretreview/sr/internal/config"
)

// Config represents user-configurable settings.
type Config struct {
	// DefaultProject is used when a command's --project flag is omitted.
	DefaultProject string `toml:"default_project"`

	// DefaultEnv is used when a command's --env flag is omitted.
	DefaultEnv string `toml:"default_env"`

	// Telemetry enables or disables anonymous usage statistics.
	// Default is true (enabled).
	Telemetry bool `toml:"telemetry"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Telemetry: true,
	}
}

// Load reads the settings file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil // Silently use defaults
	}

	return loadFromPath(cfg.SettingsFile)
}

// loadFromPath reads settings from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil // File doesn't exist, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return userCfg, nil
}

// Save writes the configuration to the settings file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}

	return c.saveToPath(cfg.SettingsFile)
}

// saveToPath writes settings to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Get returns the value of a settings key as a string.
// Returns empty string and false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "default_project":
		return c.DefaultProject, true
	case "default_env":
		return c.DefaultEnv, true
	case "telemetry":
		return strconv.FormatBool(c.Telemetry), true
	default:
		return "", false
	}
}

// Set updates a settings value from a string.
// Returns an error if the key doesn't exist or the value is invalid.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "default_project":
		c.DefaultProject = value
		return nil
	case "default_env":
		c.DefaultEnv = value
		return nil
	case "telemetry":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for telemetry: must be true or false")
		}
		c.Telemetry = b
		return nil
	default:
		return fmt.Errorf("unknown settings key: %s", key)
	}
}

// AvailableKeys returns all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"default_project": "Project used when --project is omitted",
		"default_env":     "Environment used when --env is omitted",
		"telemetry":       "Enable anonymous usage statistics (true/false)",
	}
}
