// Package interpret implements the message interpretation pipeline: intent
// classification, amount and category extraction, and the orchestration
// that turns one inbound chat message into a persisted expense or an
// answered question.
package interpret

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountPattern matches an optional currency marker followed by a numeric
// literal with up to two decimal places, e.g. "250", "₹ 99.50".
var amountPattern = regexp.MustCompile(`₹?\s*(\d+(?:\.\d{1,2})?)`)

// ExtractAmount pulls the monetary amount out of free text. Only the first
// match is used; messages carrying several amounts are deliberately not
// supported. Returns zero when no amount is present. Negative amounts are
// never recognized: the minus sign is simply not part of the pattern.
func ExtractAmount(text string) decimal.Decimal {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero
	}
	return amount
}
