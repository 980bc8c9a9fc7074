// Package telegram provides the Telegram messaging gateway: an outbound
// sender built on the Bot API client and the inbound webhook handler.
package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
)

// Gateway sends text messages through the Telegram Bot API.
type Gateway struct {
	bot *bot.Bot
}

// NewGateway creates a Telegram gateway. The bot token is validated lazily
// by the API on first use; no getMe round-trip happens at construction.
func NewGateway(token string) (*Gateway, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &Gateway{bot: b}, nil
}

// Send delivers one text message to a user identified by chat ID.
func (g *Gateway) Send(ctx context.Context, userID, text string) error {
	_, err := g.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}

// SetWebhook registers the webhook URL with the Bot API. Telegram only
// delivers updates to HTTPS endpoints.
func (g *Gateway) SetWebhook(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("webhook URL must use HTTPS")
	}

	ok, err := g.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            url,
		MaxConnections: 100,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	if !ok {
		return fmt.Errorf("Telegram rejected the webhook URL")
	}
	return nil
}
