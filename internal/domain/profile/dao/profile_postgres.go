package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/profile/entity"
)

// ProfilePostgres implements the profile repository for PostgreSQL
type ProfilePostgres struct {
	pool *pgxpool.Pool
}

// NewProfilePostgres creates a new PostgreSQL profile repository
func NewProfilePostgres(pool *pgxpool.Pool) *ProfilePostgres {
	return &ProfilePostgres{pool: pool}
}

// Create inserts a new profile
func (r *ProfilePostgres) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, name, handle, platform, active, notes, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Handle,
		p.Platform,
		p.Active,
		p.Notes,
		now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfilePostgres) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT id, name, handle, platform, active, followers, growth_rate,
		       engagement_rate, notes, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p entity.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Handle,
		&p.Platform,
		&p.Active,
		&p.Followers,
		&p.GrowthRate,
		&p.EngagementRate,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &p, nil
}

// Update updates an existing profile
func (r *ProfilePostgres) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, handle = $3, platform = $4, active = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Handle,
		p.Platform,
		p.Active,
		p.Notes,
		now,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProfileNotFound
	}

	p.UpdatedAt = now
	return nil
}

// UpdateMetrics stores the latest upstream metrics on the profile row
func (r *ProfilePostgres) UpdateMetrics(ctx context.Context, id string, followers int64, growthRate, engagementRate float64) error {
	query := `
		UPDATE profiles
		SET followers = $2, growth_rate = $3, engagement_rate = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, followers, growthRate, engagementRate, time.Now())
	if err != nil {
		return fmt.Errorf("updating profile metrics: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProfileNotFound
	}

	return nil
}

// Delete removes a profile
func (r *ProfilePostgres) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProfileNotFound
	}
	return nil
}

// List retrieves profiles, newest first. activeOnly limits to active profiles.
func (r *ProfilePostgres) List(ctx context.Context, activeOnly bool) ([]entity.Profile, error) {
	query := `
		SELECT id, name, handle, platform, active, followers, growth_rate,
		       engagement_rate, notes, created_at, updated_at
		FROM profiles
	`
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []entity.Profile{}
	for rows.Next() {
		var p entity.Profile
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Handle,
			&p.Platform,
			&p.Active,
			&p.Followers,
			&p.GrowthRate,
			&p.EngagementRate,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
