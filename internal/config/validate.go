package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for errors.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.MetricsPort <= 0 || cfg.Server.MetricsPort > 65535 {
		errs = append(errs, "server.metricsPort must be between 1 and 65535")
	}

	if cfg.Discord.Token == "" {
		errs = append(errs, "discord.token is required")
	}
	if cfg.Discord.ApplicationID == "" {
		errs = append(errs, "discord.applicationID is required")
	}
	if cfg.Discord.GuildID == "" {
		errs = append(errs, "discord.guildID is required")
	}

	if cfg.Pinboard.WebhookURL == "" {
		errs = append(errs, "pinboard.webhookURL is required")
	}
	if cfg.Pinboard.ChannelID == "" {
		errs = append(errs, "pinboard.channelID is required")
	}

	if cfg.Purge.LogChannelID == "" {
		errs = append(errs, "purge.logChannelID is required")
	}
	if cfg.Purge.ConfirmTimeout <= 0 {
		errs = append(errs, "purge.confirmTimeout must be positive")
	}

	for i, role := range cfg.Roles.Picker {
		if role.ID == "" {
			errs = append(errs, fmt.Sprintf("roles.picker[%d].id is required", i))
		}
		if role.Label == "" {
			errs = append(errs, fmt.Sprintf("roles.picker[%d].label is required", i))
		}
	}

	if cfg.Database.SQLite.Path == "" {
		errs = append(errs, "database.sqlite.path is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
