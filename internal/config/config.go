package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Log      LogConfig      `yaml:"log"`
	Verify   VerifyConfig   `yaml:"verify"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port" default:"8080"`
	Host string `yaml:"host" default:"0.0.0.0"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver string `yaml:"driver" default:"sqlite"`
	DSN    string `yaml:"dsn" default:"web_signals.db"`
}

// WebhookConfig represents the verification notification webhook.
// URL is usually left empty in the file and supplied through the
// DISCORD_WEBHOOK_URL environment variable; when neither is set the
// notification is logged locally instead of sent.
type WebhookConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"5"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" default:"50"`
	MaxBackups int    `yaml:"max_backups" default:"3"`
}

// VerifyConfig represents rate limiting for the public verification form
type VerifyConfig struct {
	RatePerMinute int `yaml:"rate_per_minute" default:"30"`
	Burst         int `yaml:"burst" default:"10"`
}

// LoadConfig loads configuration from a YAML file, fills defaults and
// applies environment overrides. A missing file is not an error; the
// defaults describe a working local deployment.
func LoadConfig(filename string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := defaults.Set(&config); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		config.Webhook.URL = url
	}
	if dsn := os.Getenv("SIGNALBOARD_DB"); dsn != "" {
		config.Database.DSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
