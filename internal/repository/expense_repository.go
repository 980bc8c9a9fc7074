// Package repository provides database access for expense records.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/expense-relay/internal/database"
	"gitlab.com/yelinaung/expense-relay/internal/models"
)

// RecentWindowSize caps how many records the recent-window listing returns.
const RecentWindowSize = 10

// ExpenseRepository handles expense database operations. Records are
// append-only: there are no update or delete operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Insert persists a new expense record. The record's CreatedAt is populated
// from the database.
func (r *ExpenseRepository) Insert(ctx context.Context, rec *models.ExpenseRecord) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (id, user_id, platform, message, amount, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Platform, rec.Message, rec.Amount, rec.Category,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's full expense history on one platform,
// newest first.
func (r *ExpenseRepository) ListByUser(
	ctx context.Context,
	userID string,
	platform models.Platform,
) ([]models.ExpenseRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, platform, message, amount, category, created_at
		FROM expenses
		WHERE user_id = $1 AND platform = $2
		ORDER BY created_at DESC
	`, userID, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListRecent retrieves at most limit of a user's newest records on one
// platform. A limit <= 0 falls back to RecentWindowSize.
func (r *ExpenseRepository) ListRecent(
	ctx context.Context,
	userID string,
	platform models.Platform,
	limit int,
) ([]models.ExpenseRecord, error) {
	if limit <= 0 {
		limit = RecentWindowSize
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, platform, message, amount, category, created_at
		FROM expenses
		WHERE user_id = $1 AND platform = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, platform, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent expenses: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]models.ExpenseRecord, error) {
	var records []models.ExpenseRecord
	for rows.Next() {
		var rec models.ExpenseRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Platform, &rec.Message,
			&rec.Amount, &rec.Category, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense rows: %w", err)
	}
	return records, nil
}
