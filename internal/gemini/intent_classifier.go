package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
	"google.golang.org/genai"
)

const classifyTimeout = 10 * time.Second

// ClassifyIntent decides whether a message records an expense or asks about
// expense history. The model is asked for exactly one of the two tags; any
// API failure or response outside the vocabulary degrades to IntentQuery.
//
// The query default is a deliberate safety bias: misclassifying an expense
// as a query merely produces an unhelpful answer, while misclassifying a
// query as an expense could fabricate financial history.
func (c *Client) ClassifyIntent(ctx context.Context, text string) models.IntentResult {
	textHash := hashText(text)

	prompt := buildClassifyPrompt(sanitizeMessage(text))

	timeoutCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	temp := float32(0.0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(10),
	}

	raw, err := c.generate(timeoutCtx, prompt, config)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("text_hash", textHash).
			Msg("ClassifyIntent: falling back to query")
		return models.IntentResult{Intent: models.IntentQuery, Degraded: true}
	}

	answer := strings.ToLower(strings.TrimSpace(raw))
	switch answer {
	case string(models.IntentExpense):
		return models.IntentResult{Intent: models.IntentExpense}
	case string(models.IntentQuery):
		return models.IntentResult{Intent: models.IntentQuery}
	}

	logger.Log.Warn().
		Str("text_hash", textHash).
		Str("answer", SanitizeForPrompt(answer, 50)).
		Msg("ClassifyIntent: unexpected answer, falling back to query")
	return models.IntentResult{Intent: models.IntentQuery, Degraded: true}
}

func buildClassifyPrompt(message string) string {
	return fmt.Sprintf(`Classify the following message as either an 'expense' or a 'query'.
An expense is a message that records a spending, like "spent 100 on coffee" or "bought groceries for 500".
A query is a message that asks about expenses, like "show me my expenses" or "how much did I spend?".

Message: "%s"

Respond with exactly one word: either 'expense' or 'query'.`, message)
}
