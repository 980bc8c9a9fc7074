package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/yelinaung/expense-relay/internal/interpret"
	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
	"google.golang.org/genai"
)

const answerTimeout = 30 * time.Second

// historyEntry is the wire shape of one record inside the answer prompt.
type historyEntry struct {
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// AnswerQuery produces a natural-language answer to a question about the
// user's expense history. All aggregation (sums, category or time filters)
// is delegated to the model's reasoning over the serialized history; the
// relay does no local aggregation. Any failure degrades to the fixed
// apology. Never errors.
func (c *Client) AnswerQuery(ctx context.Context, query string, history []models.ExpenseRecord) models.AnswerResult {
	queryHash := hashText(query)

	serialized, err := serializeHistory(history)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("query_hash", queryHash).
			Msg("AnswerQuery: failed to serialize history")
		return models.AnswerResult{Text: interpret.QueryErrorMessage, Degraded: true}
	}

	prompt := buildAnswerPrompt(sanitizeMessage(query), serialized)

	timeoutCtx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	raw, err := c.generate(timeoutCtx, prompt, &genai.GenerateContentConfig{})
	if err != nil {
		logger.Log.Error().Err(err).
			Str("query_hash", queryHash).
			Int("history_size", len(history)).
			Msg("AnswerQuery: falling back to apology")
		return models.AnswerResult{Text: interpret.QueryErrorMessage, Degraded: true}
	}

	return models.AnswerResult{Text: raw}
}

// serializeHistory renders records (already ordered newest first by the
// store) as indented JSON for the prompt context.
func serializeHistory(history []models.ExpenseRecord) (string, error) {
	entries := make([]historyEntry, len(history))
	for i, rec := range history {
		entries[i] = historyEntry{
			Amount:    rec.Amount.String(),
			Category:  string(rec.Category),
			Message:   rec.Message,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal history: %w", err)
	}
	return string(data), nil
}

func buildAnswerPrompt(query, serializedHistory string) string {
	return fmt.Sprintf(`Based on the following user query and expense history, provide a helpful response.
If the query asks for a total or summary, calculate it from the expense history.
If the query asks for specific categories or time periods, filter the expenses accordingly.
Keep the response concise and friendly.

User Query: "%s"

Expense History:
%s

Response:`, query, serializedHistory)
}
