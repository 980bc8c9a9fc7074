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

const categorizeTimeout = 10 * time.Second

// CategorizeExpense assigns one of the model vocabulary categories to an
// expense message. The response is validated against the closed vocabulary;
// any mismatch or API failure degrades to the catch-all. Never errors.
func (c *Client) CategorizeExpense(ctx context.Context, text string) models.CategoryResult {
	textHash := hashText(text)

	prompt := buildCategorizePrompt(sanitizeMessage(text))

	timeoutCtx, cancel := context.WithTimeout(ctx, categorizeTimeout)
	defer cancel()

	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(10),
	}

	raw, err := c.generate(timeoutCtx, prompt, config)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("text_hash", textHash).
			Msg("CategorizeExpense: falling back to catch-all")
		return models.CategoryResult{Category: models.CategoryOthers, Degraded: true}
	}

	answer := strings.ToLower(strings.TrimSpace(raw))
	category := models.DecodeModelCategory(answer)
	if category == models.CategoryOthers && answer != string(models.CategoryOthers) {
		// The model answered outside the vocabulary.
		logger.Log.Warn().
			Str("text_hash", textHash).
			Str("answer", SanitizeForPrompt(answer, 50)).
			Msg("CategorizeExpense: out-of-vocabulary answer, coerced to catch-all")
		return models.CategoryResult{Category: models.CategoryOthers, Degraded: true}
	}

	return models.CategoryResult{Category: category}
}

func buildCategorizePrompt(message string) string {
	vocabulary := make([]string, len(models.ModelCategories))
	for i, c := range models.ModelCategories {
		vocabulary[i] = string(c)
	}

	return fmt.Sprintf(`You are an expense categorization assistant. Categorize the following expense into one of these categories:
%s.

Expense: "%s"

Respond with only the category name, nothing else.`, strings.Join(vocabulary, ", "), message)
}
