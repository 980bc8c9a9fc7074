// Package models defines the domain entities for the expense relay.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platform identifies the messaging platform a message arrived from.
type Platform string

// Supported messaging platforms.
const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
)

// Valid reports whether the platform is one of the supported values.
func (p Platform) Valid() bool {
	return p == PlatformWhatsApp || p == PlatformTelegram
}

// Intent is the expense-vs-query classification of one inbound message.
type Intent string

// The two message intents.
const (
	IntentExpense Intent = "expense"
	IntentQuery   Intent = "query"
)

// Message is one inbound chat message. It is created per webhook event,
// consumed once by the pipeline, and never persisted.
type Message struct {
	Platform Platform
	UserID   string
	Text     string
}

// ExpenseRecord is a persisted expense. Records are append-only; the relay
// never updates or deletes them.
type ExpenseRecord struct {
	ID        uuid.UUID
	UserID    string
	Platform  Platform
	Message   string
	Amount    decimal.Decimal
	Category  Category
	CreatedAt time.Time
}

// IntentResult is the outcome of a model-backed intent classification.
// Degraded is true when the classifier fell back to the safe default
// because the model failed or answered outside the expected vocabulary.
type IntentResult struct {
	Intent   Intent
	Degraded bool
}

// CategoryResult is the outcome of a model-backed categorization.
type CategoryResult struct {
	Category Category
	Degraded bool
}

// AnswerResult is the outcome of answering a user query over their history.
// Degraded is true when Text is the fixed apology rather than a real answer.
type AnswerResult struct {
	Text     string
	Degraded bool
}
