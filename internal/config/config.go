// Package config loads service settings from the environment, with an
// optional .env file, through viper.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/govalues/money"
	"github.com/spf13/viper"
)

// Config holds all settings for the accounts service.
type Config struct {
	ServerPort           string `mapstructure:"SERVER_PORT"`
	LogLevel             string `mapstructure:"LOG_LEVEL"`
	LogFormat            string `mapstructure:"LOG_FORMAT"`
	Currency             string `mapstructure:"CURRENCY"`
	DevSeed              bool   `mapstructure:"DEV_SEED"`
	RateLimitPerMinute   int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	RedisURL             string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	CORSAllowedOrigins   string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.ServerPort }

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LoadConfig reads the environment and an optional .env file in path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("CURRENCY", "NGN")
	viper.SetDefault("DEV_SEED", false)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "bankaccounts:rate_limit")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "https://*,http://*")

	for _, k := range []string{"SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "CURRENCY", "DEV_SEED",
		"RATE_LIMIT_PER_MINUTE", "REDIS_URL", "REDIS_RATE_LIMIT_PREFIX", "CORS_ALLOWED_ORIGINS"} {
		_ = viper.BindEnv(k)
	}

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("failed to read config file; using environment values", "component", "config", "err", err)
		}
		err = nil
	}
	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.Currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	if _, perr := money.ParseCurr(config.Currency); perr != nil {
		return config, fmt.Errorf("invalid CURRENCY %q: %w", config.Currency, perr)
	}
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RateLimitPerMinute < 0 {
		slog.Warn("negative rate limit configured; disabling", "component", "config", "value", config.RateLimitPerMinute)
		config.RateLimitPerMinute = 0
	}
	return
}
