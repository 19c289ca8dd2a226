// Package config holds user preferences, stored as YAML at
// ~/.crewledger/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences.
type Config struct {
	DataDir       string `yaml:"data_dir" json:"data_dir"`             // Directory for the ledger database
	Currency      string `yaml:"currency" json:"currency"`             // Symbol used in reports and exports
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for destructive commands

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// DefaultConfig returns default settings, honoring CREWLEDGER_*
// environment overrides.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := ""
	logPath := ""
	if home != "" {
		dataDir = filepath.Join(home, ".crewledger")
		logPath = filepath.Join(dataDir, "logs", "crewledger.log")
	}

	return &Config{
		DataDir:       getEnv("CREWLEDGER_DATA_DIR", dataDir),
		Currency:      getEnv("CREWLEDGER_CURRENCY", "€"),
		ConfirmDelete: true,
		LogLevel:      getEnv("CREWLEDGER_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("CREWLEDGER_LOG_FILE", logPath),
		LogConsole:    getEnv("CREWLEDGER_LOG_CONSOLE", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DBPath returns the ledger database path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "ledger.db")
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".crewledger", "config.yaml"), nil
}

// Load loads config from ~/.crewledger/config.yaml, returning defaults
// when no file exists.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to ~/.crewledger/config.yaml.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
