package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Discord  DiscordConfig  `yaml:"discord"`
	Pinboard PinboardConfig `yaml:"pinboard"`
	Purge    PurgeConfig    `yaml:"purge"`
	Roles    RolesConfig    `yaml:"roles"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	MetricsPort     int           `yaml:"metricsPort"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"applicationID"`
	GuildID       string `yaml:"guildID"`
}

type PinboardConfig struct {
	// WebhookURL is the relay webhook posting into the archive channel.
	WebhookURL string `yaml:"webhookURL"`
	// ChannelID is the archive channel annotations are posted into.
	ChannelID string `yaml:"channelID"`
}

type PurgeConfig struct {
	// LogChannelID receives one audit line per completed purge.
	LogChannelID string `yaml:"logChannelID"`
	// ConfirmTimeout bounds how long a confirmation prompt stays live.
	ConfirmTimeout time.Duration `yaml:"confirmTimeout"`
}

type RolesConfig struct {
	Picker []RoleOptionConfig `yaml:"picker"`
}

type RoleOptionConfig struct {
	ID    string `yaml:"id"`
	Emoji string `yaml:"emoji"`
	Label string `yaml:"label"`
}

type DatabaseConfig struct {
	SQLite SQLiteConfig `yaml:"sqlite"`
}

type SQLiteConfig struct {
	Path              string `yaml:"path"`
	MaxOpenConns      int    `yaml:"maxOpenConns"`
	PragmaJournalMode string `yaml:"pragmaJournalMode"`
	PragmaBusyTimeout int    `yaml:"pragmaBusyTimeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MetricsPort:     9090,
			ShutdownTimeout: 15 * time.Second,
		},
		Purge: PurgeConfig{
			ConfirmTimeout: 180 * time.Second,
		},
		Database: DatabaseConfig{
			SQLite: SQLiteConfig{
				Path:              "/data/guildbot.db",
				MaxOpenConns:      1,
				PragmaJournalMode: "wal",
				PragmaBusyTimeout: 5000,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}
