package server

import (
	"encoding/json"
	"net/http"

	"gitlab.com/yelinaung/expense-relay/internal/interpret"
	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// QueryHandler serves the direct query API: a history question asked over
// HTTP instead of through a chat platform. No message is sent anywhere;
// the answer comes back in the response body.
type QueryHandler struct {
	store interpret.Store
	model interpret.LanguageModel
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(store interpret.Store, model interpret.LanguageModel) *QueryHandler {
	return &QueryHandler{store: store, model: model}
}

type queryRequest struct {
	UserID   string          `json:"user_id"`
	Query    string          `json:"query"`
	Platform models.Platform `json:"platform"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// Handle answers POST /api/query.
func (h *QueryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.UserID == "" || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and query are required"})
		return
	}

	if req.Platform == "" {
		req.Platform = models.PlatformWhatsApp
	}
	if !req.Platform.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown platform"})
		return
	}

	history, err := h.store.ListByUser(r.Context(), req.UserID, req.Platform)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(req.UserID)).
			Msg("Query API: failed to fetch history")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	answer := h.model.AnswerQuery(r.Context(), req.Query, history)
	writeJSON(w, http.StatusOK, queryResponse{Response: answer.Text})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
