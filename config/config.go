package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Therapist catalog source. Empty path falls back to the embedded seed.
	CatalogPath string `mapstructure:"CATALOG_PATH"`

	// Confirmation strategy: "external" publishes a meeting URL on an
	// external video endpoint and mails the details, "internal" publishes
	// an in-app session route with no mail.
	ConfirmationMode string `mapstructure:"CONFIRMATION_MODE"`
	MeetingBaseURL   string `mapstructure:"MEETING_BASE_URL"`

	// SMTP settings for the mail notifier (external mode only).
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`

	// Simulation timings, in milliseconds.
	SettlementDelayMs int `mapstructure:"SETTLEMENT_DELAY_MS"`
	ConnectDelayMs    int `mapstructure:"CONNECT_DELAY_MS"`
	TickIntervalMs    int `mapstructure:"TICK_INTERVAL_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CATALOG_PATH", "")
	viper.SetDefault("CONFIRMATION_MODE", "internal")
	viper.SetDefault("MEETING_BASE_URL", "https://meet.jit.si")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SETTLEMENT_DELAY_MS", 1500)
	viper.SetDefault("CONNECT_DELAY_MS", 2000)
	viper.SetDefault("TICK_INTERVAL_MS", 1000)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
