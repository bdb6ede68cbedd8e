// internal/repository/postgres/sale_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create inserts a new sale. Items are stored as a JSONB document.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	itemsJSON, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	query := `
		INSERT INTO sales (id, customer_id, date, items, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(
		ctx, query,
		s.ID, s.CustomerID, s.Date, itemsJSON, s.TotalCents, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	return nil
}

// FindByID retrieves a sale by ID.
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	query := `
		SELECT id, customer_id, date, items, total_cents, status, created_at, updated_at
		FROM sales
		WHERE id = $1
	`

	s, err := scanSale(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}

	return s, nil
}

// ListAll retrieves the full sales ledger ordered by date, creation time and
// ID. The deterministic ordering is what makes "most recent sale per
// customer" reproducible when two sales share a date.
func (r *SaleRepository) ListAll(ctx context.Context) ([]sale.Sale, error) {
	query := `
		SELECT id, customer_id, date, items, total_cents, status, created_at, updated_at
		FROM sales
		ORDER BY date, created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	return collectSales(rows)
}

// ListByMonth retrieves sales whose date falls inside the given month
// (YYYY-MM), optionally narrowed to one customer.
func (r *SaleRepository) ListByMonth(ctx context.Context, month, customerID string) ([]sale.Sale, error) {
	query := `
		SELECT id, customer_id, date, items, total_cents, status, created_at, updated_at
		FROM sales
		WHERE to_char(date, 'YYYY-MM') = $1
	`
	args := []interface{}{month}

	if customerID != "" {
		query += ` AND customer_id = $2`
		args = append(args, customerID)
	}
	query += ` ORDER BY date, created_at, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for month %s: %w", month, err)
	}
	defer rows.Close()

	return collectSales(rows)
}

// Update replaces the mutable fields of a sale.
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	itemsJSON, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	query := `
		UPDATE sales
		SET customer_id = $1, date = $2, items = $3, total_cents = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err = r.db.QueryRow(
		ctx, query,
		s.CustomerID, s.Date, itemsJSON, s.TotalCents, s.Status, s.ID,
	).Scan(&s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	return nil
}

// Delete removes a sale.
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var itemsJSON []byte

	if err := row.Scan(
		&s.ID, &s.CustomerID, &s.Date, &itemsJSON, &s.TotalCents, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sale items: %w", err)
		}
	}

	return &s, nil
}

func collectSales(rows pgx.Rows) ([]sale.Sale, error) {
	var sales []sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, *s)
	}
	return sales, rows.Err()
}
