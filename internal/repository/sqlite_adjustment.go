package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
)

// SQLiteAdjustmentRepo implements AdjustmentRepo using a SQLite database.
// Adjustments are immutable: insert and list only.
type SQLiteAdjustmentRepo struct {
	db db.DBTX
}

// NewSQLiteAdjustmentRepo creates a new SQLiteAdjustmentRepo.
func NewSQLiteAdjustmentRepo(db db.DBTX) *SQLiteAdjustmentRepo {
	return &SQLiteAdjustmentRepo{db: db}
}

func (r *SQLiteAdjustmentRepo) Insert(ctx context.Context, a *domain.Adjustment) error {
	query := `INSERT INTO adjustments (id, user_id, minutes, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Minutes,
		a.Reason,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting adjustment: %w", err)
	}
	return nil
}

func (r *SQLiteAdjustmentRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Adjustment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, minutes, reason, created_at
		FROM adjustments WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*domain.Adjustment
	for rows.Next() {
		var a domain.Adjustment
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Minutes, &a.Reason, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning adjustment row: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		adjustments = append(adjustments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating adjustments: %w", err)
	}
	return adjustments, nil
}
