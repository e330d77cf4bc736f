package model

import "time"

// GuildConfig holds the per-guild moderation setup. Audit logging and the
// mute role are opt-in per guild; empty fields mean "not configured".
type GuildConfig struct {
	Name               string `mapstructure:"name"`
	GuildID            string `mapstructure:"guild_id"`
	Enable             bool   `mapstructure:"enable"`
	MuteRoleID         string `mapstructure:"mute_role_id"`
	ModLogChannelID    string `mapstructure:"modlog_channel_id"`
	ModLogWebhookID    string `mapstructure:"modlog_webhook_id"`
	ModLogWebhookToken string `mapstructure:"modlog_webhook_token"`
	RaidLevel          int    `mapstructure:"raid_level"` // abuse-response level fed to the escalation policy
}

// Settings are the tunables read from the settings file.
type Settings struct {
	TimerPollInterval    time.Duration `mapstructure:"timer_poll_interval"`
	TimerMaxAttempts     int           `mapstructure:"timer_max_attempts"`
	AntiSpamWindow       time.Duration `mapstructure:"anti_spam_window"`
	EscalationMuteLength time.Duration `mapstructure:"escalation_mute_length"`
	MassMentionLimit     int           `mapstructure:"mass_mention_limit"`
	ConfirmTimeout       time.Duration `mapstructure:"confirm_timeout"`
}

// Config stores the application configuration.
type Config struct {
	BotToken      string
	AppID         string
	LogWebhookURL string // operator log webhook, separate from per-guild modlogs
	DatabasePath  string
	Settings      Settings
	GuildConfigs  map[string]GuildConfig
}
