package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/launch/entity"
)

// PhasePostgres implements PhaseRepository for PostgreSQL
type PhasePostgres struct {
	pool *pgxpool.Pool
}

// NewPhasePostgres creates a new PostgreSQL phase repository
func NewPhasePostgres(pool *pgxpool.Pool) *PhasePostgres {
	return &PhasePostgres{pool: pool}
}

// Create inserts a new phase
func (r *PhasePostgres) Create(ctx context.Context, phase *entity.Phase) error {
	query := `
		INSERT INTO launch_phases (id, launch_id, name, status, start_date, end_date,
		                           responsible, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		phase.ID,
		phase.LaunchID,
		phase.Name,
		phase.Status,
		phase.StartDate,
		phase.EndDate,
		phase.Responsible,
		phase.Notes,
		phase.CreatedAt,
		phase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}

	return nil
}

// GetByID retrieves a phase by ID
func (r *PhasePostgres) GetByID(ctx context.Context, id string) (*entity.Phase, error) {
	query := `
		SELECT id, launch_id, name, status, start_date, end_date,
		       responsible, notes, created_at, updated_at
		FROM launch_phases
		WHERE id = $1
	`

	var phase entity.Phase
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&phase.ID,
		&phase.LaunchID,
		&phase.Name,
		&phase.Status,
		&phase.StartDate,
		&phase.EndDate,
		&phase.Responsible,
		&phase.Notes,
		&phase.CreatedAt,
		&phase.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning phase: %w", err)
	}

	return &phase, nil
}

// Update updates an existing phase
func (r *PhasePostgres) Update(ctx context.Context, phase *entity.Phase) error {
	query := `
		UPDATE launch_phases
		SET name = $2, status = $3, start_date = $4, end_date = $5,
		    responsible = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		phase.ID,
		phase.Name,
		phase.Status,
		phase.StartDate,
		phase.EndDate,
		phase.Responsible,
		phase.Notes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}

	return nil
}

// Delete removes a phase
func (r *PhasePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM launch_phases WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

// ListByLaunch retrieves the phases of one launch ordered by start date
func (r *PhasePostgres) ListByLaunch(ctx context.Context, launchID string) ([]entity.Phase, error) {
	query := `
		SELECT id, launch_id, name, status, start_date, end_date,
		       responsible, notes, created_at, updated_at
		FROM launch_phases
		WHERE launch_id = $1
		ORDER BY start_date ASC
	`

	rows, err := r.pool.Query(ctx, query, launchID)
	if err != nil {
		return nil, fmt.Errorf("querying phases: %w", err)
	}
	defer rows.Close()

	phases := []entity.Phase{}
	for rows.Next() {
		var phase entity.Phase
		err := rows.Scan(
			&phase.ID,
			&phase.LaunchID,
			&phase.Name,
			&phase.Status,
			&phase.StartDate,
			&phase.EndDate,
			&phase.Responsible,
			&phase.Notes,
			&phase.CreatedAt,
			&phase.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		phases = append(phases, phase)
	}

	return phases, nil
}
