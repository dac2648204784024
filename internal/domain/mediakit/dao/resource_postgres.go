package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/mediakit/entity"
)

// ResourcePostgres implements the media kit resource repository for PostgreSQL
type ResourcePostgres struct {
	pool *pgxpool.Pool
}

// NewResourcePostgres creates a new PostgreSQL resource repository
func NewResourcePostgres(pool *pgxpool.Pool) *ResourcePostgres {
	return &ResourcePostgres{pool: pool}
}

// Create inserts a new resource
func (r *ResourcePostgres) Create(ctx context.Context, res *entity.Resource) error {
	query := `
		INSERT INTO mediakit_resources (id, name, description, category, url, storage_key,
		                                format, file_size, tags, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		res.Name,
		res.Description,
		res.Category,
		res.URL,
		res.StorageKey,
		res.Format,
		res.FileSize,
		res.Tags,
		res.Active,
		now,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating resource: %w", err)
	}

	return nil
}

// GetByID retrieves a resource by ID
func (r *ResourcePostgres) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	query := `
		SELECT id, name, description, category, url, storage_key,
		       format, file_size, tags, active, created_at, updated_at
		FROM mediakit_resources
		WHERE id = $1
	`

	var res entity.Resource
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.Name,
		&res.Description,
		&res.Category,
		&res.URL,
		&res.StorageKey,
		&res.Format,
		&res.FileSize,
		&res.Tags,
		&res.Active,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}

	return &res, nil
}

// Update updates an existing resource
func (r *ResourcePostgres) Update(ctx context.Context, res *entity.Resource) error {
	query := `
		UPDATE mediakit_resources
		SET name = $2, description = $3, category = $4, url = $5, storage_key = $6,
		    format = $7, file_size = $8, tags = $9, active = $10, updated_at = $11
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.pool.Exec(ctx, query,
		res.ID,
		res.Name,
		res.Description,
		res.Category,
		res.URL,
		res.StorageKey,
		res.Format,
		res.FileSize,
		res.Tags,
		res.Active,
		now,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrResourceNotFound
	}

	res.UpdatedAt = now
	return nil
}

// Delete removes a resource
func (r *ResourcePostgres) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM mediakit_resources WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrResourceNotFound
	}
	return nil
}

// List retrieves resources, newest first. category narrows to one category.
func (r *ResourcePostgres) List(ctx context.Context, category string) ([]entity.Resource, error) {
	query := `
		SELECT id, name, description, category, url, storage_key,
		       format, file_size, tags, active, created_at, updated_at
		FROM mediakit_resources
	`
	args := []interface{}{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	resources := []entity.Resource{}
	for rows.Next() {
		var res entity.Resource
		err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Description,
			&res.Category,
			&res.URL,
			&res.StorageKey,
			&res.Format,
			&res.FileSize,
			&res.Tags,
			&res.Active,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		resources = append(resources, res)
	}

	return resources, nil
}
