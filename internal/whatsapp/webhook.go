package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"

	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// MessageHandler consumes one inbound message. Implemented by the
// interpretation pipeline.
type MessageHandler interface {
	Handle(ctx context.Context, msg models.Message) error
}

// WebhookHandler serves the WhatsApp Business webhook: the GET verification
// handshake and POST message delivery.
type WebhookHandler struct {
	handler     MessageHandler
	verifyToken string
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(handler MessageHandler, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		handler:     handler,
		verifyToken: verifyToken,
	}
}

// Verify implements the webhook verification handshake: Meta sends
// hub.mode, hub.verify_token and hub.challenge, and expects the challenge
// echoed back when the token matches.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	logger.Log.Debug().
		Str("mode", mode).
		Msg("WhatsApp webhook verification request")

	if mode != "subscribe" || token != h.verifyToken {
		http.Error(w, "Invalid verification request", http.StatusForbidden)
		return
	}

	if challenge == "" {
		http.Error(w, "No challenge provided", http.StatusBadRequest)
		return
	}

	_, _ = w.Write([]byte(challenge))
}

// webhookPayload is the subset of the WhatsApp Business webhook JSON the
// relay consumes.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
}

// Receive handles POSTed webhook events. Inner processing failures never
// fail the acknowledgment: WhatsApp retries delivery on non-2xx responses,
// which would cause duplicate processing. Only an outbound send failure
// surfaces as an error response.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to decode WhatsApp webhook payload")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	msg, ok := extractMessage(payload)
	if !ok {
		// Status updates, media messages and other non-text events are
		// acknowledged without further action.
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	if err := h.handler.Handle(r.Context(), msg); err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(msg.UserID)).
			Msg("Failed to deliver WhatsApp response")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// extractMessage pulls the first text message out of the payload.
func extractMessage(payload webhookPayload) (models.Message, bool) {
	if len(payload.Entry) == 0 || len(payload.Entry[0].Changes) == 0 {
		return models.Message{}, false
	}

	messages := payload.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return models.Message{}, false
	}

	first := messages[0]
	if first.Text == nil || first.Text.Body == "" {
		logger.Log.Debug().Msg("Received WhatsApp message without text body")
		return models.Message{}, false
	}

	return models.Message{
		Platform: models.PlatformWhatsApp,
		UserID:   first.From,
		Text:     first.Text.Body,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
