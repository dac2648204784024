package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vadim/contentdesk/internal/domain/post/dao"
	"github.com/vadim/contentdesk/internal/domain/post/entity"
)

// Service handles business logic for posts
type Service struct {
	posts dao.PostRepository
}

// New creates a new post service
func New(posts dao.PostRepository) *Service {
	return &Service{posts: posts}
}

// CreateInput represents input for creating a post
type CreateInput struct {
	ProductID   *string
	PostAt      time.Time
	ProfileIDs  []string
	ContentType entity.ContentType
	Format      entity.Format
	Copies      []entity.PlatformCopy
	Hashtags    []string
	MediaIDs    []string
	LaunchID    *string
}

// CreatePost creates a new post in draft status
func (s *Service) CreatePost(ctx context.Context, in CreateInput) (*entity.Post, error) {
	now := time.Now()

	post := &entity.Post{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		PostAt:      in.PostAt,
		ProfileIDs:  in.ProfileIDs,
		ContentType: in.ContentType,
		Format:      in.Format,
		Copies:      in.Copies,
		Hashtags:    in.Hashtags,
		MediaIDs:    in.MediaIDs,
		Status:      entity.StatusDraft,
		LaunchID:    in.LaunchID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	post.Normalize()

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetByID retrieves a post by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}
	return post, nil
}

// UpdateInput represents input for updating a post. Nil fields keep their
// current value; ProfileIDs replaces the whole target set when present.
type UpdateInput struct {
	ID          string
	ProductID   *string
	PostAt      *time.Time
	ProfileIDs  []string
	ContentType *entity.ContentType
	Format      *entity.Format
	Copies      []entity.PlatformCopy
	Hashtags    []string
	MediaIDs    []string
	LaunchID    *string
	ClearLaunch bool
}

// UpdatePost updates an existing post
func (s *Service) UpdatePost(ctx context.Context, in UpdateInput) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}

	if in.ProductID != nil {
		post.ProductID = in.ProductID
	}
	if in.PostAt != nil {
		post.PostAt = *in.PostAt
	}
	if in.ProfileIDs != nil {
		post.ProfileIDs = in.ProfileIDs
	}
	if in.ContentType != nil {
		post.ContentType = *in.ContentType
	}
	if in.Format != nil {
		post.Format = *in.Format
	}
	if in.Copies != nil {
		post.Copies = in.Copies
	}
	if in.Hashtags != nil {
		post.Hashtags = in.Hashtags
	}
	if in.MediaIDs != nil {
		post.MediaIDs = in.MediaIDs
	}
	if in.ClearLaunch {
		post.LaunchID = nil
	} else if in.LaunchID != nil {
		post.LaunchID = in.LaunchID
	}

	post.Normalize()
	post.UpdatedAt = time.Now()

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ChangeStatus moves a post along the editorial workflow. Only transitions
// allowed by the workflow edge set succeed.
func (s *Service) ChangeStatus(ctx context.Context, id string, next entity.Status) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}

	switch next {
	case entity.StatusDraft, entity.StatusPending, entity.StatusApproved,
		entity.StatusPublished, entity.StatusCanceled:
	default:
		return nil, entity.ErrInvalidStatus
	}

	if !post.Status.CanTransitionTo(next) {
		return nil, entity.ErrStatusTransition
	}

	if err := s.posts.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	post.Status = next
	post.UpdatedAt = time.Now()

	return post, nil
}

// DeletePost removes a post
func (s *Service) DeletePost(ctx context.Context, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return entity.ErrPostNotFound
	}

	return s.posts.Delete(ctx, id)
}

// ListPosts retrieves posts with filtering
func (s *Service) ListPosts(ctx context.Context, filter dao.PostFilter, opts dao.ListOptions) ([]entity.Post, error) {
	return s.posts.List(ctx, filter, opts)
}

// ListByDateRange retrieves posts inside the inclusive [from, to] range
func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error) {
	if to.Before(from) {
		return nil, entity.ErrInvalidDateRange
	}
	return s.posts.ListByDateRange(ctx, from, to)
}

// CountPosts returns the number of posts matching the filter
func (s *Service) CountPosts(ctx context.Context, filter dao.PostFilter) (int64, error) {
	return s.posts.Count(ctx, filter)
}
