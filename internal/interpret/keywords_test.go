package interpret

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-relay/internal/models"
	"pgregory.net/rapid"
)

func TestCategorizeKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  models.Category
	}{
		{name: "coffee is beverage", input: "spent 150 on coffee", want: models.CategoryBeverage},
		{name: "tea is beverage", input: "tea with friends 50", want: models.CategoryBeverage},
		{name: "lunch is food", input: "lunch 250", want: models.CategoryFood},
		{name: "uber is travel", input: "uber to office 180", want: models.CategoryTravel},
		{name: "vegetables are grocery", input: "bought vegetables 300", want: models.CategoryGrocery},
		{name: "shirt is shopping", input: "new shirt 899", want: models.CategoryShopping},
		{name: "protein is health", input: "protein powder 1200", want: models.CategoryHealth},
		{name: "oats resolve to food via late rule", input: "oats 210", want: models.CategoryFood},
		{name: "cereal resolves to food via late rule", input: "cereal 140", want: models.CategoryFood},
		{name: "no keyword falls back", input: "spent 500 on stuff", want: models.CategoryOther},
		{name: "empty text falls back", input: "", want: models.CategoryOther},
		{name: "case insensitive", input: "COFFEE 100", want: models.CategoryBeverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CategorizeKeywords(tt.input))
		})
	}
}

func TestCategorizeKeywords_RuleOrder(t *testing.T) {
	t.Parallel()

	// First matching rule wins: beverage rules precede food rules.
	require.Equal(t, models.CategoryBeverage, CategorizeKeywords("coffee and lunch 400"))

	// Food precedes travel.
	require.Equal(t, models.CategoryFood, CategorizeKeywords("dinner after the taxi 600"))
}

func TestCategorizeKeywords_AlwaysInVocabulary(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		got := CategorizeKeywords(text)
		require.True(t, got.InVocabulary(models.HeuristicCategories),
			"CategorizeKeywords(%q) = %q is out of vocabulary", text, got)
	})
}
