package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for the calendar agent.
// Every field has a flag or environment-variable equivalent; the file is a
// convenience for operators running the server under a supervisor.
type Config struct {
	Google  GoogleConfig  `yaml:"google"`
	Memory  MemoryConfig  `yaml:"memory"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// GoogleConfig configures OAuth client credentials and token storage.
type GoogleConfig struct {
	// CredentialsFile is the path to the OAuth client secrets JSON
	// (the file downloaded from the Google Cloud console).
	CredentialsFile string `yaml:"credentials_file"`

	// TokenDir is the directory holding one token file per account.
	TokenDir string `yaml:"token_dir"`
}

// MemoryConfig configures the session memory store.
type MemoryConfig struct {
	// Path is the SQLite database file for conversation history.
	Path string `yaml:"path"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Google: GoogleConfig{
			CredentialsFile: "credentials.json",
			TokenDir:        "token_files",
		},
		Memory: MemoryConfig{
			Path: "sessions.db",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9090",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML configuration file. Fields left unset in
// the file keep their defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Google.TokenDir == "" {
		return fmt.Errorf("google.token_dir must not be empty")
	}
	if c.Memory.Path == "" {
		return fmt.Errorf("memory.path must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr must not be empty when metrics are enabled")
	}
	return nil
}
