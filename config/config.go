package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppURL            string `mapstructure:"APP_URL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// The photographer's organization. Every booking and calendar row is
	// keyed by this value; there is no multi-tenant routing.
	OrgID string `mapstructure:"ORG_ID"`

	// Outbound email.
	PhotographerEmail string `mapstructure:"PHOTOGRAPHER_EMAIL"`
	FromEmail         string `mapstructure:"FROM_EMAIL"`
	MailAPIURL        string `mapstructure:"MAIL_API_URL"`
	MailAPIKey        string `mapstructure:"MAIL_API_KEY"`

	// Redis configuration.
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RedisPass   string `mapstructure:"REDIS_PASSWORD"`
	RedisTaskDB int    `mapstructure:"REDIS_TASK_DB"`
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
	viper.SetDefault("APP_URL", "http://localhost:8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ORG_ID", "")
	viper.SetDefault("PHOTOGRAPHER_EMAIL", "")
	viper.SetDefault("FROM_EMAIL", "Studio <noreply@localhost>")
	viper.SetDefault("MAIL_API_URL", "https://api.resend.com/emails")
	viper.SetDefault("MAIL_API_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_TASK_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")

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
