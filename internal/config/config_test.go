package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":             "postgres://localhost/expenses",
		"GEMINI_API_KEY":           "test-gemini-key",
		"TELEGRAM_BOT_TOKEN":       "123:abc",
		"WHATSAPP_TOKEN":           "wa-token",
		"WHATSAPP_PHONE_NUMBER_ID": "1234567890",
		"VERIFY_TOKEN":             "verify-me",
	}
}

func lookupFrom(env map[string]string) envLookup {
	return func(key string) string { return env[key] }
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFrom(lookupFrom(validEnv()))
		require.NoError(t, err)
		require.Equal(t, "postgres://localhost/expenses", cfg.DatabaseURL)
		require.Equal(t, "test-gemini-key", cfg.GeminiAPIKey)
		require.Equal(t, "verify-me", cfg.WhatsAppVerifyToken)
	})

	t.Run("default listen address", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFrom(lookupFrom(validEnv()))
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.ListenAddr)
	})

	t.Run("PORT overrides listen address", func(t *testing.T) {
		t.Parallel()
		env := validEnv()
		env["PORT"] = "3000"
		cfg, err := loadFrom(lookupFrom(env))
		require.NoError(t, err)
		require.Equal(t, ":3000", cfg.ListenAddr)
	})

	t.Run("missing required keys are all reported", func(t *testing.T) {
		t.Parallel()
		env := validEnv()
		delete(env, "DATABASE_URL")
		delete(env, "GEMINI_API_KEY")

		_, err := loadFrom(lookupFrom(env))
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL is required")
		require.Contains(t, err.Error(), "GEMINI_API_KEY is required")
	})

	t.Run("telegram webhook URL must be HTTPS", func(t *testing.T) {
		t.Parallel()
		env := validEnv()
		env["TELEGRAM_WEBHOOK_URL"] = "http://example.com/webhook/telegram"

		_, err := loadFrom(lookupFrom(env))
		require.Error(t, err)
		require.Contains(t, err.Error(), "TELEGRAM_WEBHOOK_URL must use HTTPS")
	})

	t.Run("telegram webhook URL is optional", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFrom(lookupFrom(validEnv()))
		require.NoError(t, err)
		require.Empty(t, cfg.TelegramWebhookURL)
	})
}
