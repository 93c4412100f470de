package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Personal Ops Assistant specifics
	Owner    OwnerConfig
	Telegram TelegramConfig
	Google   GoogleConfig
	Database DatabaseConfig
	Briefing BriefingConfig
	Ingest   IngestConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OwnerConfig identifies the single owner of this assistant and the
// reference timezone all relative date phrases resolve against.
type OwnerConfig struct {
	ID       string
	Timezone string // IANA name, e.g. "America/New_York"
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string // secret_token echoed back by Telegram on every update
	OwnerChatID   int64  // chat that receives briefings
}

type GoogleConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

type DatabaseConfig struct {
	Path string // sqlite file path
}

type BriefingConfig struct {
	Enabled bool
	At      string // local wall-clock "HH:MM" in the owner timezone
}

type IngestConfig struct {
	Enabled         bool
	Query           string // gmail search query, e.g. "is:unread label:tasks"
	IntervalMinutes int
	MaxMessages     int64
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Owner
	cfg.Owner.ID = viper.GetString("owner.id")
	cfg.Owner.Timezone = viper.GetString("owner.timezone")
	if ownerID := viper.GetString("owner_id"); ownerID != "" {
		cfg.Owner.ID = ownerID
	}

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.OwnerChatID = viper.GetInt64("telegram.owner_chat_id")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if tgSecret := viper.GetString("telegram_webhook_secret"); tgSecret != "" {
		cfg.Telegram.WebhookSecret = tgSecret
	}
	if chatID := viper.GetInt64("telegram_owner_chat_id"); chatID != 0 {
		cfg.Telegram.OwnerChatID = chatID
	}

	// Google APIs (Calendar + Gmail share the credentials)
	cfg.Google.CredentialsPath = viper.GetString("google.credentials_path")
	cfg.Google.TokenPath = viper.GetString("google.token_path")
	cfg.Google.CalendarID = viper.GetString("google.calendar_id")
	if googleCreds := viper.GetString("google_credentials"); googleCreds != "" {
		cfg.Google.CredentialsPath = googleCreds
	}

	// Database
	cfg.Database.Path = viper.GetString("database.path")

	// Briefing
	cfg.Briefing.Enabled = viper.GetBool("briefing.enabled")
	cfg.Briefing.At = viper.GetString("briefing.at")

	// Email ingestion
	cfg.Ingest.Enabled = viper.GetBool("ingest.enabled")
	cfg.Ingest.Query = viper.GetString("ingest.query")
	cfg.Ingest.IntervalMinutes = viper.GetInt("ingest.interval_minutes")
	cfg.Ingest.MaxMessages = viper.GetInt64("ingest.max_messages")

	if cfg.Owner.ID == "" {
		return nil, fmt.Errorf("owner.id is required")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("owner.timezone", "America/New_York")
	viper.SetDefault("google.token_path", "token.json")
	viper.SetDefault("google.calendar_id", "primary")
	viper.SetDefault("database.path", "assistant.db")

	viper.SetDefault("briefing.enabled", true)
	viper.SetDefault("briefing.at", "07:30")

	viper.SetDefault("ingest.enabled", false)
	viper.SetDefault("ingest.query", "is:unread category:primary")
	viper.SetDefault("ingest.interval_minutes", 15)
	viper.SetDefault("ingest.max_messages", 10)
}
