package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"moderation-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and the
// settings file.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logWebhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if logWebhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, operator logging will be disabled")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/moderation.db"
	}

	settingsPath := os.Getenv("SETTINGS_PATH")
	if settingsPath == "" {
		settingsPath = "data/settings.yaml"
	}

	cfg := &model.Config{
		BotToken:      token,
		AppID:         appID,
		LogWebhookURL: logWebhookURL,
		DatabasePath:  dbPath,
		GuildConfigs:  make(map[string]model.GuildConfig),
	}
	if err := loadSettings(settingsPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSettings(path string, cfg *model.Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("timer_poll_interval", time.Minute)
	v.SetDefault("timer_max_attempts", 3)
	v.SetDefault("anti_spam_window", 15*time.Second)
	v.SetDefault("escalation_mute_length", 30*time.Minute)
	v.SetDefault("mass_mention_limit", 6)
	v.SetDefault("confirm_timeout", 15*time.Second)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: settings file not found at %s, using defaults.", path)
		} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: settings file not found at %s, using defaults.", path)
		} else {
			return fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg.Settings); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	guilds := make(map[string]model.GuildConfig)
	if err := v.UnmarshalKey("guilds", &guilds); err != nil {
		return fmt.Errorf("failed to parse guild configs: %w", err)
	}
	for gid, gc := range guilds {
		if gc.GuildID == "" {
			gc.GuildID = gid
		}
		cfg.GuildConfigs[gid] = gc
	}
	return nil
}
