package models

import "strings"

// Category is an expense category. Two closed vocabularies exist: the
// keyword path (WhatsApp) and the model path (Telegram). They are not
// reconciled; a record's category meaning depends on which path produced it.
type Category string

// Categories shared by both vocabularies plus path-specific members.
const (
	CategoryBeverage      Category = "beverage"
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
	CategoryGrocery       Category = "grocery"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"

	// CategoryOther is the catch-all of the keyword vocabulary.
	CategoryOther Category = "other"
	// CategoryOthers is the catch-all of the model vocabulary.
	CategoryOthers Category = "others"
)

// HeuristicCategories is the closed vocabulary of the keyword categorizer.
var HeuristicCategories = []Category{
	CategoryBeverage,
	CategoryFood,
	CategoryTravel,
	CategoryGrocery,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// ModelCategories is the closed vocabulary of the model categorizer.
var ModelCategories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryGrocery,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealth,
	CategoryOthers,
}

// DecodeHeuristicCategory maps free-form input to the keyword vocabulary.
// Matching is case-insensitive with surrounding whitespace ignored; anything
// outside the vocabulary coerces to CategoryOther.
func DecodeHeuristicCategory(s string) Category {
	return decodeCategory(s, HeuristicCategories, CategoryOther)
}

// DecodeModelCategory maps free-form input to the model vocabulary.
// Anything outside the vocabulary coerces to CategoryOthers.
func DecodeModelCategory(s string) Category {
	return decodeCategory(s, ModelCategories, CategoryOthers)
}

func decodeCategory(s string, vocabulary []Category, catchAll Category) Category {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, c := range vocabulary {
		if string(c) == normalized {
			return c
		}
	}
	return catchAll
}

// InVocabulary reports whether the category is a member of the given vocabulary.
func (c Category) InVocabulary(vocabulary []Category) bool {
	for _, v := range vocabulary {
		if c == v {
			return true
		}
	}
	return false
}
