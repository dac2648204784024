package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/launch/entity"
)

// LaunchPostgres implements LaunchRepository for PostgreSQL
type LaunchPostgres struct {
	pool *pgxpool.Pool
}

// NewLaunchPostgres creates a new PostgreSQL launch repository
func NewLaunchPostgres(pool *pgxpool.Pool) *LaunchPostgres {
	return &LaunchPostgres{pool: pool}
}

// Create inserts a new launch
func (r *LaunchPostgres) Create(ctx context.Context, launch *entity.Launch) error {
	query := `
		INSERT INTO launches (id, name, product_id, category, status, start_date, end_date,
		                      responsible, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		launch.ID,
		launch.Name,
		launch.ProductID,
		launch.Category,
		launch.Status,
		launch.StartDate,
		launch.EndDate,
		launch.Responsible,
		launch.Description,
		launch.CreatedAt,
		launch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting launch: %w", err)
	}

	return nil
}

// GetByID retrieves a launch by ID
func (r *LaunchPostgres) GetByID(ctx context.Context, id string) (*entity.Launch, error) {
	query := `
		SELECT id, name, product_id, category, status, start_date, end_date,
		       responsible, description, created_at, updated_at
		FROM launches
		WHERE id = $1
	`

	var launch entity.Launch
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&launch.ID,
		&launch.Name,
		&launch.ProductID,
		&launch.Category,
		&launch.Status,
		&launch.StartDate,
		&launch.EndDate,
		&launch.Responsible,
		&launch.Description,
		&launch.CreatedAt,
		&launch.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning launch: %w", err)
	}

	return &launch, nil
}

// Update updates an existing launch
func (r *LaunchPostgres) Update(ctx context.Context, launch *entity.Launch) error {
	query := `
		UPDATE launches
		SET name = $2, product_id = $3, category = $4, status = $5, start_date = $6,
		    end_date = $7, responsible = $8, description = $9, updated_at = $10
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		launch.ID,
		launch.Name,
		launch.ProductID,
		launch.Category,
		launch.Status,
		launch.StartDate,
		launch.EndDate,
		launch.Responsible,
		launch.Description,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating launch: %w", err)
	}

	return nil
}

// Delete removes a launch and its phases in one transaction, so a failure
// never leaves orphaned phases behind.
func (r *LaunchPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM launch_phases WHERE launch_id = $1", id); err != nil {
		return fmt.Errorf("deleting launch phases: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM launches WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting launch: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE posts SET launch_id = NULL WHERE launch_id = $1", id); err != nil {
		return fmt.Errorf("detaching posts from launch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing launch delete: %w", err)
	}

	return nil
}

// List retrieves launches with filtering, newest first
func (r *LaunchPostgres) List(ctx context.Context, filter LaunchFilter) ([]entity.Launch, error) {
	query := `
		SELECT id, name, product_id, category, status, start_date, end_date,
		       responsible, description, created_at, updated_at
		FROM launches
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", argNum)
		args = append(args, filter.ProductID)
		argNum++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, *filter.Category)
	}

	query += " ORDER BY start_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying launches: %w", err)
	}
	defer rows.Close()

	launches := []entity.Launch{}
	for rows.Next() {
		var launch entity.Launch
		err := rows.Scan(
			&launch.ID,
			&launch.Name,
			&launch.ProductID,
			&launch.Category,
			&launch.Status,
			&launch.StartDate,
			&launch.EndDate,
			&launch.Responsible,
			&launch.Description,
			&launch.CreatedAt,
			&launch.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		launches = append(launches, launch)
	}

	return launches, nil
}
