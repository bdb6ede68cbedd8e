// internal/repository/postgres/reminder_status_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReminderStatusRepository persists the workflow status overlay. Records are
// keyed by the reminder identity and written with a keyed upsert; the full
// table is read once per aggregation, never re-scanned per write.
type ReminderStatusRepository struct {
	db *pgxpool.Pool
}

func NewReminderStatusRepository(db *pgxpool.Pool) *ReminderStatusRepository {
	return &ReminderStatusRepository{db: db}
}

// ListAll reads the whole overlay.
func (r *ReminderStatusRepository) ListAll(ctx context.Context) ([]reminder.StatusRecord, error) {
	query := `
		SELECT identity, customer_id, status, notes, updated_at
		FROM reminder_statuses
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder statuses: %w", err)
	}
	defer rows.Close()

	var records []reminder.StatusRecord
	for rows.Next() {
		var rec reminder.StatusRecord
		if err := rows.Scan(&rec.Identity, &rec.CustomerID, &rec.Status, &rec.Notes, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder status: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Upsert creates or updates the record for one identity. Concurrent writers
// race under last-write-wins; there is no version token.
func (r *ReminderStatusRepository) Upsert(ctx context.Context, rec *reminder.StatusRecord) error {
	query := `
		INSERT INTO reminder_statuses (identity, customer_id, status, notes, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (identity) DO UPDATE
		SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, rec.Identity, rec.CustomerID, rec.Status, rec.Notes).Scan(&rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder status: %w", err)
	}

	return nil
}
