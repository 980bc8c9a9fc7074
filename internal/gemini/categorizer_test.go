package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-relay/internal/models"
	"pgregory.net/rapid"
)

func TestCategorizeExpense(t *testing.T) {
	t.Parallel()

	t.Run("accepts vocabulary member", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{response: textResponse("food")})

		res := client.CategorizeExpense(context.Background(), "spent 250 on lunch")
		require.Equal(t, models.CategoryFood, res.Category)
		require.False(t, res.Degraded)
	})

	t.Run("trims and lowercases the answer", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{response: textResponse(" Entertainment\n")})

		res := client.CategorizeExpense(context.Background(), "movie tickets 400")
		require.Equal(t, models.CategoryEntertainment, res.Category)
		require.False(t, res.Degraded)
	})

	t.Run("literal catch-all is not degraded", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{response: textResponse("others")})

		res := client.CategorizeExpense(context.Background(), "paid 50 for something")
		require.Equal(t, models.CategoryOthers, res.Category)
		require.False(t, res.Degraded)
	})

	t.Run("out-of-vocabulary answer coerces to catch-all", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{response: textResponse("beverage")})

		res := client.CategorizeExpense(context.Background(), "coffee 150")
		require.Equal(t, models.CategoryOthers, res.Category)
		require.True(t, res.Degraded)
	})

	t.Run("API error coerces to catch-all", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{err: errors.New("boom")})

		res := client.CategorizeExpense(context.Background(), "coffee 150")
		require.Equal(t, models.CategoryOthers, res.Category)
		require.True(t, res.Degraded)
	})

	t.Run("prompt lists the full vocabulary", func(t *testing.T) {
		t.Parallel()
		mock := &mockGenerator{response: textResponse("food")}
		client := NewClientWithGenerator(mock)

		client.CategorizeExpense(context.Background(), "lunch 250")
		for _, c := range models.ModelCategories {
			require.Contains(t, mock.capturedPrompt, string(c))
		}
	})
}

func TestCategorizeExpense_NeverOutOfVocabulary(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		answer := rapid.String().Draw(t, "answer")
		client := NewClientWithGenerator(&mockGenerator{response: textResponse(answer)})

		res := client.CategorizeExpense(context.Background(), "lunch 250")
		require.True(t, res.Category.InVocabulary(models.ModelCategories),
			"answer %q produced out-of-vocabulary category %q", answer, res.Category)
	})
}
