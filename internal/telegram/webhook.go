package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// MessageHandler consumes one inbound message. Implemented by the
// interpretation pipeline.
type MessageHandler interface {
	Handle(ctx context.Context, msg models.Message) error
}

// WebhookHandler serves the Telegram Bot API webhook.
type WebhookHandler struct {
	handler MessageHandler
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(handler MessageHandler) *WebhookHandler {
	return &WebhookHandler{handler: handler}
}

// Receive handles POSTed Bot API updates. As with the WhatsApp webhook,
// inner processing failures never fail the acknowledgment; only an
// outbound send failure surfaces as an error response.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var update tgmodels.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to decode Telegram update")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	msg, ok := extractMessage(&update)
	if !ok {
		// Non-message updates and messages without text are acknowledged
		// without further action.
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	if err := h.handler.Handle(r.Context(), msg); err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(msg.UserID)).
			Msg("Failed to deliver Telegram response")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// extractMessage converts a Bot API update into a platform message. The
// chat ID doubles as the user identifier, matching how history is scoped.
func extractMessage(update *tgmodels.Update) (models.Message, bool) {
	if update.Message == nil {
		return models.Message{}, false
	}
	if update.Message.Text == "" {
		logger.Log.Debug().Msg("Received Telegram message without text")
		return models.Message{}, false
	}

	return models.Message{
		Platform: models.PlatformTelegram,
		UserID:   strconv.FormatInt(update.Message.Chat.ID, 10),
		Text:     update.Message.Text,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
