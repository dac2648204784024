package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/protocol/entity"
)

// ProtocolPostgres implements the protocol repository for PostgreSQL
type ProtocolPostgres struct {
	pool *pgxpool.Pool
}

// NewProtocolPostgres creates a new PostgreSQL protocol repository
func NewProtocolPostgres(pool *pgxpool.Pool) *ProtocolPostgres {
	return &ProtocolPostgres{pool: pool}
}

// Create inserts a new protocol
func (r *ProtocolPostgres) Create(ctx context.Context, p *entity.Protocol) error {
	query := `
		INSERT INTO protocols (id, title, description, type, content, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Type,
		p.Content,
		p.Active,
		now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating protocol: %w", err)
	}

	return nil
}

// GetByID retrieves a protocol by ID
func (r *ProtocolPostgres) GetByID(ctx context.Context, id string) (*entity.Protocol, error) {
	query := `
		SELECT id, title, description, type, content, active, created_at, updated_at
		FROM protocols
		WHERE id = $1
	`

	var p entity.Protocol
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Content,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting protocol: %w", err)
	}

	return &p, nil
}

// Update updates an existing protocol
func (r *ProtocolPostgres) Update(ctx context.Context, p *entity.Protocol) error {
	query := `
		UPDATE protocols
		SET title = $2, description = $3, type = $4, content = $5, active = $6, updated_at = $7
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Type,
		p.Content,
		p.Active,
		now,
	)
	if err != nil {
		return fmt.Errorf("updating protocol: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProtocolNotFound
	}

	p.UpdatedAt = now
	return nil
}

// Delete removes a protocol
func (r *ProtocolPostgres) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM protocols WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting protocol: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProtocolNotFound
	}
	return nil
}

// List retrieves protocols, newest first. activeOnly limits to active ones.
func (r *ProtocolPostgres) List(ctx context.Context, activeOnly bool) ([]entity.Protocol, error) {
	query := `
		SELECT id, title, description, type, content, active, created_at, updated_at
		FROM protocols
	`
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing protocols: %w", err)
	}
	defer rows.Close()

	protocols := []entity.Protocol{}
	for rows.Next() {
		var p entity.Protocol
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Type,
			&p.Content,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning protocol: %w", err)
		}
		protocols = append(protocols, p)
	}

	return protocols, nil
}
