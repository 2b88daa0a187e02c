package domain

import "time"

type Config struct {
	DatabaseDir       string         `mapstructure:"database_dir"`
	Timezone          string         `mapstructure:"timezone"`
	Location          *time.Location `mapstructure:"-"`
	CacheTTL          time.Duration  `mapstructure:"cache_ttl"`
	ListenAddr        string         `mapstructure:"listen_addr"`
	ImageBaseURL      string         `mapstructure:"image_base_url"`
	AdminToken        string         `mapstructure:"admin_token"`
	DiscordWebhookURL string         `mapstructure:"discord_webhook_url"`
	LogLevel          string         `mapstructure:"log_level"`
}
