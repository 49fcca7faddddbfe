// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	UploadDir   string
	ContentPath string

	TelegramBotToken string
	TelegramChatID   string

	AdminEmail    string
	AdminPassword string

	SiteLocale       string
	CurrencySymbol   string
	CartTTL          time.Duration
	CarouselInterval time.Duration
	LogLevel         string
}

// Defaults are applied before the environment is read.
func Defaults() *Config {
	return &Config{
		Port:             "3040",
		UploadDir:        "uploads",
		AdminEmail:       "admin@example.com",
		SiteLocale:       "id",
		CurrencySymbol:   "Rp",
		CartTTL:          2 * time.Hour,
		CarouselInterval: 5 * time.Second,
		LogLevel:         "info",
	}
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("PORT", &cfg.Port)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("UPLOAD_DIR", &cfg.UploadDir)
	str("CONTENT_PATH", &cfg.ContentPath)
	str("TELEGRAM_BOT_TOKEN", &cfg.TelegramBotToken)
	str("TELEGRAM_CHAT_ID", &cfg.TelegramChatID)
	str("ADMIN_EMAIL", &cfg.AdminEmail)
	str("ADMIN_PASSWORD", &cfg.AdminPassword)
	str("SITE_LOCALE", &cfg.SiteLocale)
	str("CURRENCY_SYMBOL", &cfg.CurrencySymbol)
	str("LOG_LEVEL", &cfg.LogLevel)

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be a number: %w", err)
	}
	if cfg.TelegramChatID != "" {
		if _, err := strconv.ParseInt(cfg.TelegramChatID, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be a number: %w", err)
		}
	}

	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
		*dst = d
		return nil
	}
	if err := dur("CART_TTL", &cfg.CartTTL); err != nil {
		return nil, err
	}
	if err := dur("CAROUSEL_INTERVAL", &cfg.CarouselInterval); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	default:
		return nil, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
