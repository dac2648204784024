package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/post/entity"
)

const postColumns = `id, product_id, post_at, profile_ids, profile_id, content_type,
	       format, copies, hashtags, media_ids, status, launch_id, created_at, updated_at`

// PostPostgres implements PostRepository for PostgreSQL
type PostPostgres struct {
	pool *pgxpool.Pool
}

// NewPostPostgres creates a new PostgreSQL post repository
func NewPostPostgres(pool *pgxpool.Pool) *PostPostgres {
	return &PostPostgres{pool: pool}
}

// Create inserts a new post
func (r *PostPostgres) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, product_id, post_at, profile_ids, profile_id, content_type,
		                   format, copies, hashtags, media_ids, status, launch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.ProductID,
		post.PostAt,
		post.ProfileIDs,
		post.ProfileID,
		post.ContentType,
		post.Format,
		entity.EncodeCopies(post.Copies),
		post.Hashtags,
		post.MediaIDs,
		post.Status,
		post.LaunchID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostPostgres) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	post, err := scanPost(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post: %w", err)
	}

	return post, nil
}

// Update updates an existing post
func (r *PostPostgres) Update(ctx context.Context, post *entity.Post) error {
	query := `
		UPDATE posts
		SET product_id = $2, post_at = $3, profile_ids = $4, profile_id = $5,
		    content_type = $6, format = $7, copies = $8, hashtags = $9,
		    media_ids = $10, status = $11, launch_id = $12, updated_at = $13
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.ProductID,
		post.PostAt,
		post.ProfileIDs,
		post.ProfileID,
		post.ContentType,
		post.Format,
		entity.EncodeCopies(post.Copies),
		post.Hashtags,
		post.MediaIDs,
		post.Status,
		post.LaunchID,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	return nil
}

// Delete removes a post
func (r *PostPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// List retrieves posts with filtering
func (r *PostPostgres) List(ctx context.Context, filter PostFilter, opts ListOptions) ([]entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.ProfileID != "" {
		query += fmt.Sprintf(" AND $%d = ANY(profile_ids)", argNum)
		args = append(args, filter.ProfileID)
		argNum++
	}

	if filter.LaunchID != "" {
		query += fmt.Sprintf(" AND launch_id = $%d", argNum)
		args = append(args, filter.LaunchID)
		argNum++
	}

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

	if filter.ContentType != nil {
		query += fmt.Sprintf(" AND content_type = $%d", argNum)
		args = append(args, *filter.ContentType)
		argNum++
	}

	// Sorting
	sortCol := "post_at"
	if opts.SortBy != "" {
		sortCol = opts.SortBy
	}
	order := "ASC"
	if opts.Desc {
		order = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortCol, order)

	// Pagination
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
		argNum++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, opts.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListByDateRange retrieves posts inside the inclusive [from, to] range
func (r *PostPostgres) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE post_at >= $1 AND post_at <= $2
		ORDER BY post_at ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying posts by date range: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// UpdateStatus updates only the status of a post
func (r *PostPostgres) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	query := `UPDATE posts SET status = $2, updated_at = $3 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("updating post status: %w", err)
	}

	return nil
}

// Count returns the total count of posts matching the filter
func (r *PostPostgres) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM posts WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.ProfileID != "" {
		query += fmt.Sprintf(" AND $%d = ANY(profile_ids)", argNum)
		args = append(args, filter.ProfileID)
		argNum++
	}
	if filter.LaunchID != "" {
		query += fmt.Sprintf(" AND launch_id = $%d", argNum)
		args = append(args, filter.LaunchID)
		argNum++
	}
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
	if filter.ContentType != nil {
		query += fmt.Sprintf(" AND content_type = $%d", argNum)
		args = append(args, *filter.ContentType)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}

	return count, nil
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	var post entity.Post
	var rawCopies []byte
	var profileID *string

	err := row.Scan(
		&post.ID,
		&post.ProductID,
		&post.PostAt,
		&post.ProfileIDs,
		&profileID,
		&post.ContentType,
		&post.Format,
		&rawCopies,
		&post.Hashtags,
		&post.MediaIDs,
		&post.Status,
		&post.LaunchID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profileID != nil {
		post.ProfileID = *profileID
	}
	post.Copies = entity.ParseCopies(rawCopies)
	// Rows written before the multi-profile migration carry a stale mirror.
	post.Normalize()

	return &post, nil
}

func collectPosts(rows pgx.Rows) ([]entity.Post, error) {
	posts := []entity.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		posts = append(posts, *post)
	}

	return posts, nil
}
