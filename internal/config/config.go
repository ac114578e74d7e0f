package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the service reads. Values come from
// environment variables, with an optional config.yaml next to the binary.
type Config struct {
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	AlertFrom        string `mapstructure:"ALERT_FROM"`
	AlertTo          string `mapstructure:"ALERT_TO"`
	SMTPServer       string `mapstructure:"SMTP_SERVER"`
	SMTPPort         string `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"SMTP_USER"`
	SMTPPassword     string `mapstructure:"SMTP_PASS"`
	SMTPAuthDisabled bool   `mapstructure:"SMTP_AUTH_DISABLED"`
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "retail-redis:6379")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_AUTH_DISABLED", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env vars through Unmarshal, so
	// bind the keys we care about explicitly.
	for _, key := range []string{
		"HTTP_ADDR", "DATABASE_URL", "REDIS_ADDR", "JWT_SECRET",
		"ALERT_FROM", "ALERT_TO", "SMTP_SERVER", "SMTP_PORT",
		"SMTP_USER", "SMTP_PASS", "SMTP_AUTH_DISABLED",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}
