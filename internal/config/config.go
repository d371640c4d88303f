package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the Sweet Shop API.
// It is loaded once at startup and passed by reference to the services
// that need it; nothing reads viper after Load returns.
type Config struct {
	AppPort             string
	DatabaseURL         string
	RabbitMQURL         string
	JWTSecret           string
	TokenTTL            time.Duration
	AdminRegisterSecret string
}

// Load reads configuration from environment variables, applying defaults
// for anything not set.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60)
	viper.SetDefault("ADMIN_REGISTER_SECRET", "")
	viper.AutomaticEnv()

	return &Config{
		AppPort:             viper.GetString("APP_PORT"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RabbitMQURL:         viper.GetString("RABBITMQ_URL"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		TokenTTL:            time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		AdminRegisterSecret: viper.GetString("ADMIN_REGISTER_SECRET"),
	}
}
