package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-relay/internal/interpret"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

func sampleHistory() []models.ExpenseRecord {
	return []models.ExpenseRecord{
		{
			ID:        uuid.New(),
			UserID:    "42",
			Platform:  models.PlatformTelegram,
			Message:   "spent 250 on lunch",
			Amount:    decimal.RequireFromString("250"),
			Category:  models.CategoryFood,
			CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			UserID:    "42",
			Platform:  models.PlatformTelegram,
			Message:   "uber 180",
			Amount:    decimal.RequireFromString("180"),
			Category:  models.CategoryTravel,
			CreatedAt: time.Date(2026, 8, 19, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestAnswerQuery(t *testing.T) {
	t.Parallel()

	t.Run("returns the model answer verbatim", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse("You spent 430 in total this week."),
		})

		res := client.AnswerQuery(context.Background(), "how much did I spend this week", sampleHistory())
		require.Equal(t, "You spent 430 in total this week.", res.Text)
		require.False(t, res.Degraded)
	})

	t.Run("prompt contains the question and serialized history", func(t *testing.T) {
		t.Parallel()
		mock := &mockGenerator{response: textResponse("answer")}
		client := NewClientWithGenerator(mock)

		client.AnswerQuery(context.Background(), "how much on food?", sampleHistory())
		require.Contains(t, mock.capturedPrompt, "how much on food?")
		require.Contains(t, mock.capturedPrompt, `"amount": "250"`)
		require.Contains(t, mock.capturedPrompt, `"category": "travel"`)
		require.Contains(t, mock.capturedPrompt, "spent 250 on lunch")
	})

	t.Run("empty history still works", func(t *testing.T) {
		t.Parallel()
		mock := &mockGenerator{response: textResponse("No expenses recorded yet.")}
		client := NewClientWithGenerator(mock)

		res := client.AnswerQuery(context.Background(), "what did I spend", nil)
		require.False(t, res.Degraded)
		require.Equal(t, "No expenses recorded yet.", res.Text)
	})

	t.Run("API error returns the fixed apology", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{err: errors.New("service unavailable")})

		res := client.AnswerQuery(context.Background(), "how much did I spend", sampleHistory())
		require.Equal(t, interpret.QueryErrorMessage, res.Text)
		require.True(t, res.Degraded)
	})

	t.Run("nil response returns the fixed apology", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{})

		res := client.AnswerQuery(context.Background(), "how much did I spend", sampleHistory())
		require.Equal(t, interpret.QueryErrorMessage, res.Text)
		require.True(t, res.Degraded)
	})
}
