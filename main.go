// expense-relay receives chat messages from WhatsApp and Telegram
// webhooks, interprets them as expenses or questions about past
// spending, and replies on the same platform.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/yelinaung/expense-relay/internal/config"
	"gitlab.com/yelinaung/expense-relay/internal/database"
	"gitlab.com/yelinaung/expense-relay/internal/gemini"
	"gitlab.com/yelinaung/expense-relay/internal/interpret"
	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
	"gitlab.com/yelinaung/expense-relay/internal/repository"
	"gitlab.com/yelinaung/expense-relay/internal/server"
	"gitlab.com/yelinaung/expense-relay/internal/telegram"
	"gitlab.com/yelinaung/expense-relay/internal/telemetry"
	"gitlab.com/yelinaung/expense-relay/internal/whatsapp"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.SetLevel(cfg.LogLevel)
	logger.InitHashSalt()

	logger.Log.Info().
		Str("version", version).
		Str("commit", commit).
		Msg("starting expense-relay")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to set up telemetry")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to run migrations")
	}

	lm, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to create gemini client")
	}

	wa := whatsapp.NewClient("", cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID, 10*time.Second)

	tg, err := telegram.NewGateway(cfg.TelegramBotToken)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to create telegram client")
	}
	if cfg.TelegramWebhookURL != "" {
		if err := tg.SetWebhook(ctx, cfg.TelegramWebhookURL); err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to register telegram webhook")
		}
		logger.Log.Info().Str("url", cfg.TelegramWebhookURL).Msg("telegram webhook registered")
	}

	store := repository.NewExpenseRepository(pool)
	pipeline := interpret.NewPipeline(store, lm, map[models.Platform]interpret.Sender{
		models.PlatformWhatsApp: wa,
		models.PlatformTelegram: tg,
	})

	router := server.NewRouter(server.Deps{
		WhatsApp: whatsapp.NewWebhookHandler(pipeline, cfg.WhatsAppVerifyToken),
		Telegram: telegram.NewWebhookHandler(pipeline),
		Query:    server.NewQueryHandler(store, lm),
		DB:       pool,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("telemetry shutdown failed")
	}
}
