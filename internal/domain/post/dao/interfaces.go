package dao

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/domain/post/entity"
)

// PostFilter contains filters for listing posts
type PostFilter struct {
	ProfileID   string
	LaunchID    string
	ProductID   string
	Status      *entity.Status
	ContentType *entity.ContentType
}

// ListOptions contains pagination and sorting options
type ListOptions struct {
	Limit  int
	Offset int
	SortBy string // "post_at", "created_at", "updated_at"
	Desc   bool
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create inserts a new post into the database
	Create(ctx context.Context, post *entity.Post) error

	// GetByID retrieves a post by its ID
	GetByID(ctx context.Context, id string) (*entity.Post, error)

	// Update updates an existing post
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post by ID
	Delete(ctx context.Context, id string) error

	// List retrieves posts with optional filtering and pagination
	List(ctx context.Context, filter PostFilter, opts ListOptions) ([]entity.Post, error)

	// ListByDateRange retrieves posts whose post date falls inside the
	// inclusive [from, to] range
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error)

	// UpdateStatus updates only the status of a post
	UpdateStatus(ctx context.Context, id string, status entity.Status) error

	// Count returns the total number of posts matching the filter
	Count(ctx context.Context, filter PostFilter) (int64, error)
}
