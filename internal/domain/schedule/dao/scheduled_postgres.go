package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/schedule/entity"
)

// ScheduledPostgres implements the scheduled post repository for PostgreSQL
type ScheduledPostgres struct {
	pool *pgxpool.Pool
}

// NewScheduledPostgres creates a new PostgreSQL scheduled post repository
func NewScheduledPostgres(pool *pgxpool.Pool) *ScheduledPostgres {
	return &ScheduledPostgres{pool: pool}
}

// Create inserts a new scheduled post
func (r *ScheduledPostgres) Create(ctx context.Context, p *entity.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts (id, profile_id, text, hashtags, media_urls,
		                             scheduled_for, status, external_id, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.ProfileID,
		p.Content.Text,
		p.Content.Hashtags,
		p.Content.MediaURLs,
		p.ScheduledFor,
		p.Status,
		p.ExternalID,
		p.ErrorMessage,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting scheduled post: %w", err)
	}

	return nil
}

// GetByID retrieves a scheduled post by ID
func (r *ScheduledPostgres) GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	query := `
		SELECT id, profile_id, text, hashtags, media_urls,
		       scheduled_for, status, external_id, error_message, created_at
		FROM scheduled_posts
		WHERE id = $1
	`

	p, err := scanScheduled(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning scheduled post: %w", err)
	}

	return p, nil
}

// Delete removes a scheduled post
func (r *ScheduledPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM scheduled_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting scheduled post: %w", err)
	}
	return nil
}

// List retrieves scheduled posts, soonest first. profileID narrows to one
// profile; empty status means all statuses.
func (r *ScheduledPostgres) List(ctx context.Context, profileID string, status entity.DispatchStatus) ([]entity.ScheduledPost, error) {
	query := `
		SELECT id, profile_id, text, hashtags, media_urls,
		       scheduled_for, status, external_id, error_message, created_at
		FROM scheduled_posts
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if profileID != "" {
		query += fmt.Sprintf(" AND profile_id = $%d", argNum)
		args = append(args, profileID)
		argNum++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, status)
	}

	query += " ORDER BY scheduled_for ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.ScheduledPost{}
	for rows.Next() {
		p, err := scanScheduled(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		posts = append(posts, *p)
	}

	return posts, nil
}

// ListDue retrieves pending posts whose scheduled time has passed
func (r *ScheduledPostgres) ListDue(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledPost, error) {
	query := `
		SELECT id, profile_id, text, hashtags, media_urls,
		       scheduled_for, status, external_id, error_message, created_at
		FROM scheduled_posts
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, entity.DispatchStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("querying due posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.ScheduledPost{}
	for rows.Next() {
		p, err := scanScheduled(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		posts = append(posts, *p)
	}

	return posts, nil
}

// MarkSent records a successful dispatch
func (r *ScheduledPostgres) MarkSent(ctx context.Context, id, externalID string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $2, external_id = $3, error_message = ''
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, entity.DispatchStatusSent, externalID)
	if err != nil {
		return fmt.Errorf("marking scheduled post sent: %w", err)
	}

	return nil
}

// MarkFailed records a failed dispatch
func (r *ScheduledPostgres) MarkFailed(ctx context.Context, id, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $2, error_message = $3
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, entity.DispatchStatusFailed, errorMessage)
	if err != nil {
		return fmt.Errorf("marking scheduled post failed: %w", err)
	}

	return nil
}

func scanScheduled(row pgx.Row) (*entity.ScheduledPost, error) {
	var p entity.ScheduledPost

	err := row.Scan(
		&p.ID,
		&p.ProfileID,
		&p.Content.Text,
		&p.Content.Hashtags,
		&p.Content.MediaURLs,
		&p.ScheduledFor,
		&p.Status,
		&p.ExternalID,
		&p.ErrorMessage,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
