package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/varoOP/seasonal/internal/domain"
	"github.com/varoOP/seasonal/internal/logger"
)

// SetDefaults registers the default value of every configuration key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database_dir", ".")
	v.SetDefault("timezone", "Local")
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("image_base_url", "/images/")
	v.SetDefault("log_level", "info")
}

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (SEASONAL_*)
// 3. Command line flags bound by the caller
func Load() (*domain.Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom builds and validates a Config from v
func LoadFrom(v *viper.Viper) (*domain.Config, error) {
	SetDefaults(v)

	cfg := &domain.Config{
		DatabaseDir:       v.GetString("database_dir"),
		Timezone:          v.GetString("timezone"),
		CacheTTL:          v.GetDuration("cache_ttl"),
		ListenAddr:        v.GetString("listen_addr"),
		ImageBaseURL:      v.GetString("image_base_url"),
		AdminToken:        v.GetString("admin_token"),
		DiscordWebhookURL: v.GetString("discord_webhook_url"),
		LogLevel:          v.GetString("log_level"),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %s: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl: %s (must be a positive duration such as 1h)", v.GetString("cache_ttl"))
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level: %s", cfg.LogLevel)
	}

	if cfg.DatabaseDir == "" {
		return nil, fmt.Errorf("database_dir is required (set via config.yaml or SEASONAL_DATABASE_DIR environment variable)")
	}

	return cfg, nil
}
