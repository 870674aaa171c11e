package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvHome is the environment variable to override the default sr home directory
	EnvHome = "SR_HOME"

	// EnvAPITimeout is the environment variable to configure API request timeout
	EnvAPITimeout = "SR_API_TIMEOUT"

	// DefaultAPITimeout is the default timeout for API requests (30 seconds)
	DefaultAPITimeout = 30 * time.Second
)

// GetAPITimeout returns the configured API timeout from the SR_API_TIMEOUT
// environment variable. If not set or invalid, returns DefaultAPITimeout.
// Accepts duration strings like "30s", "1m", "2m30s".
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	// Validate reasonable range (1 second to 10 minutes)
	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n",
			EnvAPITimeout, duration)
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 10m\n",
			EnvAPITimeout, duration)
		return 10 * time.Minute
	}

	return duration
}

// DefaultHomeOverride can be set by the binary's main package to change the
// default home directory. Used by dev builds (via ldflags) to keep a dev
// tree away from ~/.secret-review. SR_HOME still takes precedence.
var DefaultHomeOverride string

// Config holds the sr directory layout.
type Config struct {
	HomeDir         string // $SR_HOME
	CredentialsFile string // $SR_HOME/config.json
	SettingsFile    string // $SR_HOME/config.toml
}

// DefaultConfig returns the default configuration.
func DefaultConfig() (*Config, error) {
	srHome := os.Getenv(EnvHome)
	if srHome == "" {
		if DefaultHomeOverride != "" {
			srHome = DefaultHomeOverride
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get user home directory: %w", err)
			}
			srHome = filepath.Join(home, ".secret-review")
		}
	}

	return &Config{
		HomeDir:         srHome,
		CredentialsFile: filepath.Join(srHome, "config.json"),
		SettingsFile:    filepath.Join(srHome, "config.toml"),
	}, nil
}

// EnsureHome creates the home directory. Mode 0700: the directory
// holds the credential file.
func (c *Config) EnsureHome() error {
	if err := os.MkdirAll(c.HomeDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.HomeDir, err)
	}
	return nil
}
