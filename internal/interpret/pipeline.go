package interpret

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-relay/internal/logger"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// Fixed user-facing texts. The error apologies are returned verbatim on any
// inner failure; the webhook transport never sees those failures.
const (
	QueryErrorMessage   = "Sorry, I encountered an error processing your query. Please try again later."
	ExpenseErrorMessage = "Sorry, I encountered an error recording your expense. Please try again later."
	NoAmountMessage     = "Could not find a valid amount in your message. Please try again."
)

// Store is the expense persistence collaborator.
type Store interface {
	Insert(ctx context.Context, rec *models.ExpenseRecord) error
	ListByUser(ctx context.Context, userID string, platform models.Platform) ([]models.ExpenseRecord, error)
}

// LanguageModel is the natural-language collaborator. Implementations never
// return errors: each method degrades to a safe default and reports that
// via the result's Degraded flag.
type LanguageModel interface {
	ClassifyIntent(ctx context.Context, text string) models.IntentResult
	CategorizeExpense(ctx context.Context, text string) models.CategoryResult
	AnswerQuery(ctx context.Context, query string, history []models.ExpenseRecord) models.AnswerResult
}

// Sender delivers one outbound text to a user on a specific platform.
type Sender interface {
	Send(ctx context.Context, userID, text string) error
}

// Pipeline turns one inbound message into exactly one outbound message,
// optionally persisting an expense record along the way. It holds no state
// across messages.
type Pipeline struct {
	store   Store
	model   LanguageModel
	senders map[models.Platform]Sender
}

// NewPipeline creates a Pipeline with explicitly injected collaborators.
func NewPipeline(store Store, model LanguageModel, senders map[models.Platform]Sender) *Pipeline {
	return &Pipeline{
		store:   store,
		model:   model,
		senders: senders,
	}
}

// Handle processes one inbound message. Every processing failure is
// contained here and converted to a fixed apology sent to the user, so the
// webhook transport can always acknowledge receipt; a non-nil error means
// only that the final outbound send itself failed.
func (p *Pipeline) Handle(ctx context.Context, msg models.Message) error {
	if strings.TrimSpace(msg.Text) == "" {
		// Messages with no text body are discarded before interpretation.
		return nil
	}

	userHash := logger.HashUserID(msg.UserID)
	res := p.model.ClassifyIntent(ctx, msg.Text)

	logger.Log.Info().
		Str("platform", string(msg.Platform)).
		Str("user_hash", userHash).
		Str("intent", string(res.Intent)).
		Bool("degraded", res.Degraded).
		Msg("Message classified")

	// Second opinion from the pattern classifier, logged only. The two
	// disagreeing is expected for ambiguous phrasing but worth watching.
	if heuristicIsQuery := IsQuery(msg.Text); !res.Degraded &&
		heuristicIsQuery != (res.Intent == models.IntentQuery) {
		logger.Log.Debug().
			Str("user_hash", userHash).
			Str("model_intent", string(res.Intent)).
			Bool("heuristic_is_query", heuristicIsQuery).
			Msg("Heuristic classifier disagrees with model")
	}

	if res.Intent == models.IntentQuery {
		return p.handleQuery(ctx, msg)
	}
	return p.handleExpense(ctx, msg)
}

func (p *Pipeline) handleQuery(ctx context.Context, msg models.Message) error {
	history, err := p.store.ListByUser(ctx, msg.UserID, msg.Platform)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(msg.UserID)).
			Msg("Failed to fetch expense history")
		return p.send(ctx, msg, QueryErrorMessage)
	}

	answer := p.model.AnswerQuery(ctx, msg.Text, history)
	return p.send(ctx, msg, answer.Text)
}

func (p *Pipeline) handleExpense(ctx context.Context, msg models.Message) error {
	amount := ExtractAmount(msg.Text)
	category := p.categorize(ctx, msg)

	if !amount.IsPositive() {
		// Amounts of zero or below never produce a record.
		return p.send(ctx, msg, NoAmountMessage)
	}

	rec := &models.ExpenseRecord{
		ID:       uuid.New(),
		UserID:   msg.UserID,
		Platform: msg.Platform,
		Message:  msg.Text,
		Amount:   amount,
		Category: category,
	}

	if err := p.store.Insert(ctx, rec); err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(msg.UserID)).
			Msg("Failed to persist expense")
		return p.send(ctx, msg, ExpenseErrorMessage)
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(msg.UserID)).
		Str("category", string(category)).
		Str("record_id", rec.ID.String()).
		Msg("Expense recorded")

	confirmation := fmt.Sprintf("Expense recorded: ₹%s (%s)", amount.String(), category)
	return p.send(ctx, msg, confirmation)
}

// categorize picks the categorizer path by platform: Telegram messages go
// through the model vocabulary, WhatsApp messages through the keyword
// vocabulary. The two vocabularies are intentionally kept apart.
func (p *Pipeline) categorize(ctx context.Context, msg models.Message) models.Category {
	if msg.Platform == models.PlatformTelegram {
		return p.model.CategorizeExpense(ctx, msg.Text).Category
	}
	return CategorizeKeywords(msg.Text)
}

// send delivers outbound text via the platform's gateway. Send failures are
// the one class of error Handle does not contain.
func (p *Pipeline) send(ctx context.Context, msg models.Message, text string) error {
	sender, ok := p.senders[msg.Platform]
	if !ok {
		return fmt.Errorf("no sender configured for platform %q", msg.Platform)
	}

	if err := sender.Send(ctx, msg.UserID, text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
