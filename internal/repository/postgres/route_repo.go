// internal/repository/postgres/route_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gryphathie/KombuchaApp/internal/domain/route"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new delivery route.
func (r *RouteRepository) Create(ctx context.Context, rt *route.Route) error {
	query := `
		INSERT INTO routes (id, name, notes, customer_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		rt.ID, rt.Name, rt.Notes, rt.CustomerIDs,
	).Scan(&rt.CreatedAt, &rt.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	return nil
}

// FindByID retrieves a route by ID.
func (r *RouteRepository) FindByID(ctx context.Context, id string) (*route.Route, error) {
	query := `
		SELECT id, name, notes, customer_ids, created_at, updated_at
		FROM routes
		WHERE id = $1
	`

	var rt route.Route
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rt.ID, &rt.Name, &rt.Notes, &rt.CustomerIDs, &rt.CreatedAt, &rt.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find route: %w", err)
	}

	return &rt, nil
}

// ListAll retrieves every route, name-ordered.
func (r *RouteRepository) ListAll(ctx context.Context) ([]route.Route, error) {
	query := `
		SELECT id, name, notes, customer_ids, created_at, updated_at
		FROM routes
		ORDER BY name, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []route.Route
	for rows.Next() {
		var rt route.Route
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Notes, &rt.CustomerIDs, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, rt)
	}

	return routes, rows.Err()
}

// Update replaces the mutable fields of a route.
func (r *RouteRepository) Update(ctx context.Context, rt *route.Route) error {
	query := `
		UPDATE routes
		SET name = $1, notes = $2, customer_ids = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, rt.Name, rt.Notes, rt.CustomerIDs, rt.ID).Scan(&rt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}

	return nil
}

// Delete removes a route.
func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
