// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL  string
	GeminiAPIKey string

	TelegramBotToken   string
	TelegramWebhookURL string

	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppVerifyToken   string

	ListenAddr string
	LogLevel   string
}

type envLookup func(key string) string

func envValue(key string) string {
	return os.Getenv(key)
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return loadFrom(envValue)
}

func loadFrom(getenv envLookup) (*Config, error) {
	cfg := &Config{
		DatabaseURL:  getenv("DATABASE_URL"),
		GeminiAPIKey: getenv("GEMINI_API_KEY"),

		TelegramBotToken:   getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: getenv("TELEGRAM_WEBHOOK_URL"),

		WhatsAppToken:         getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneNumberID: getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppVerifyToken:   getenv("VERIFY_TOKEN"),

		LogLevel: getenv("LOG_LEVEL"),
	}

	cfg.ListenAddr = ":8080"
	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		cfg.ListenAddr = ":" + port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	required := []struct {
		key   string
		value string
	}{
		{"DATABASE_URL", c.DatabaseURL},
		{"GEMINI_API_KEY", c.GeminiAPIKey},
		{"TELEGRAM_BOT_TOKEN", c.TelegramBotToken},
		{"WHATSAPP_TOKEN", c.WhatsAppToken},
		{"WHATSAPP_PHONE_NUMBER_ID", c.WhatsAppPhoneNumberID},
		{"VERIFY_TOKEN", c.WhatsAppVerifyToken},
	}

	for _, r := range required {
		if r.value == "" {
			errs = append(errs, r.key+" is required")
		}
	}

	if c.TelegramWebhookURL != "" && !strings.HasPrefix(c.TelegramWebhookURL, "https://") {
		errs = append(errs, "TELEGRAM_WEBHOOK_URL must use HTTPS")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
