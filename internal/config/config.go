// Package config loads the application configuration from a TOML file
// and credentials from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Deck directory configuration
	Decks DecksConfig `toml:"decks"`

	// Moxfield sync configuration
	Moxfield MoxfieldConfig `toml:"moxfield"`

	// EDHREC configuration
	EDHREC EDHRECConfig `toml:"edhrec"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatabaseConfig contains card database settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to cards.db
}

// DecksConfig contains decklist directory settings.
type DecksConfig struct {
	Dir string `toml:"dir"` // Directory holding deck .md files
}

// MoxfieldConfig contains Moxfield API settings. The bearer token and
// username come from the environment, never from this file.
type MoxfieldConfig struct {
	RequestTimeout    string  `toml:"request_timeout"`     // e.g. "30s"
	RequestsPerSecond float64 `toml:"requests_per_second"` // API rate cap
}

// EDHRECConfig contains EDHREC client settings.
type EDHRECConfig struct {
	CacheTTL string `toml:"cache_ttl"` // Page cache TTL (e.g. "4h")
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// Credentials are Moxfield API credentials pulled from the
// environment.
type Credentials struct {
	MoxfieldBearerToken string
	MoxfieldUsername    string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "data/cards.db",
		},
		Decks: DecksConfig{
			Dir: "decks",
		},
		Moxfield: MoxfieldConfig{
			RequestTimeout:    "30s",
			RequestsPerSecond: 2,
		},
		EDHREC: EDHRECConfig{
			CacheTTL: "4h",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".manaforge")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if
// the file doesn't exist. An explicit path overrides the default
// location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk at the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Moxfield.RequestTimeout); err != nil {
		return fmt.Errorf("invalid moxfield request timeout %q: %w", c.Moxfield.RequestTimeout, err)
	}
	if c.Moxfield.RequestsPerSecond <= 0 {
		return fmt.Errorf("moxfield requests per second must be positive: %v", c.Moxfield.RequestsPerSecond)
	}
	if _, err := time.ParseDuration(c.EDHREC.CacheTTL); err != nil {
		return fmt.Errorf("invalid edhrec cache TTL %q: %w", c.EDHREC.CacheTTL, err)
	}
	return nil
}

// GetMoxfieldTimeout returns the Moxfield request timeout as a
// duration.
func (c *Config) GetMoxfieldTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Moxfield.RequestTimeout)
}

// GetEDHRECCacheTTL returns the EDHREC cache TTL as a duration.
func (c *Config) GetEDHRECCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.EDHREC.CacheTTL)
}

// LoadCredentials loads Moxfield credentials from the environment,
// first folding in .env files from the working directory. Missing
// .env files are silently ignored; the environment always wins.
func LoadCredentials() Credentials {
	for _, envFile := range []string{".env", ".env.local"} {
		godotenv.Load(envFile)
	}
	return Credentials{
		MoxfieldBearerToken: os.Getenv("MOXFIELD_BEARER_TOKEN"),
		MoxfieldUsername:    os.Getenv("MOXFIELD_USERNAME"),
	}
}
