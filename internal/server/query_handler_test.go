package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

type fakeStore struct {
	records      []models.ExpenseRecord
	listErr      error
	listUserID   string
	listPlatform models.Platform
}

func (s *fakeStore) Insert(_ context.Context, _ *models.ExpenseRecord) error {
	return errors.New("not implemented")
}

func (s *fakeStore) ListByUser(_ context.Context, userID string, platform models.Platform) ([]models.ExpenseRecord, error) {
	s.listUserID = userID
	s.listPlatform = platform
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

type fakeModel struct {
	answer models.AnswerResult
}

func (m *fakeModel) ClassifyIntent(_ context.Context, _ string) models.IntentResult {
	return models.IntentResult{Intent: models.IntentQuery}
}

func (m *fakeModel) CategorizeExpense(_ context.Context, _ string) models.CategoryResult {
	return models.CategoryResult{Category: models.CategoryOthers}
}

func (m *fakeModel) AnswerQuery(_ context.Context, _ string, _ []models.ExpenseRecord) models.AnswerResult {
	return m.answer
}

func postQuery(t *testing.T, h *QueryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body)))
	return w
}

func TestQueryHandler(t *testing.T) {
	t.Parallel()

	t.Run("answers a query", func(t *testing.T) {
		t.Parallel()
		store := &fakeStore{records: []models.ExpenseRecord{
			{UserID: "42", Amount: decimal.NewFromInt(250), Category: models.CategoryFood},
		}}
		model := &fakeModel{answer: models.AnswerResult{Text: "You spent 250."}}
		h := NewQueryHandler(store, model)

		w := postQuery(t, h, `{"user_id": "42", "query": "how much did I spend", "platform": "telegram"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "You spent 250.", resp["response"])
		require.Equal(t, "42", store.listUserID)
		require.Equal(t, models.PlatformTelegram, store.listPlatform)
	})

	t.Run("platform defaults to whatsapp", func(t *testing.T) {
		t.Parallel()
		store := &fakeStore{}
		h := NewQueryHandler(store, &fakeModel{answer: models.AnswerResult{Text: "ok"}})

		w := postQuery(t, h, `{"user_id": "42", "query": "summary"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, models.PlatformWhatsApp, store.listPlatform)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		t.Parallel()
		h := NewQueryHandler(&fakeStore{}, &fakeModel{})

		w := postQuery(t, h, `{"query": "summary"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = postQuery(t, h, `{"user_id": "42"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		t.Parallel()
		h := NewQueryHandler(&fakeStore{}, &fakeModel{})

		w := postQuery(t, h, `{"user_id": "42", "query": "summary", "platform": "signal"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body is rejected", func(t *testing.T) {
		t.Parallel()
		h := NewQueryHandler(&fakeStore{}, &fakeModel{})

		w := postQuery(t, h, "{not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		t.Parallel()
		store := &fakeStore{listErr: errors.New("connection refused")}
		h := NewQueryHandler(store, &fakeModel{})

		w := postQuery(t, h, `{"user_id": "42", "query": "summary"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
