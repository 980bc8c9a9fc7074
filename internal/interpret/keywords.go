package interpret

import (
	"strings"

	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// keywordRule maps a set of keywords to a category. Rules are ordered and
// the first matching rule wins, so a message containing both "coffee" and
// "lunch" resolves to beverage. The ordering is part of the contract.
type keywordRule struct {
	category models.Category
	keywords []string
}

var keywordRules = []keywordRule{
	{models.CategoryBeverage, []string{"coffee", "tea"}},
	{models.CategoryFood, []string{"food", "meal", "lunch", "dinner", "breakfast"}},
	{models.CategoryTravel, []string{"travel", "uber", "taxi", "metro"}},
	{models.CategoryGrocery, []string{"grocery", "vegetable", "fruit"}},
	{models.CategoryShopping, []string{"shopping", "clothes", "shirt", "pant"}},
	{models.CategoryHealth, []string{"protein", "supplement"}},
	{models.CategoryFood, []string{"oat", "cereal"}},
}

// CategorizeKeywords maps free text to the keyword vocabulary using ordered
// substring rules, case-insensitively. No scoring and no blending; falls
// back to the catch-all when nothing matches.
func CategorizeKeywords(text string) models.Category {
	lower := strings.ToLower(text)

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	return models.CategoryOther
}
