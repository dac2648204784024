package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vadim/contentdesk/internal/domain/schedule/entity"
)

// ScheduledPostRepository defines the interface for scheduled post storage
type ScheduledPostRepository interface {
	Create(ctx context.Context, p *entity.ScheduledPost) error
	GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, profileID string, status entity.DispatchStatus) ([]entity.ScheduledPost, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledPost, error)
	MarkSent(ctx context.Context, id, externalID string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
}

// ProfileDirectory resolves a profile id to its platform and handle.
// Implemented by the profile service.
type ProfileDirectory interface {
	Resolve(ctx context.Context, profileID string) (platform, handle string, err error)
}

// Publisher hands a post to the platform for delivery. Implemented by the
// upstream platform adapter.
type Publisher interface {
	Publish(ctx context.Context, platform, handle string, content entity.Content, at time.Time) (externalID string, err error)
}

// Service handles scheduled post business logic
type Service struct {
	repo      ScheduledPostRepository
	profiles  ProfileDirectory
	publisher Publisher
	logger    *slog.Logger
	batchSize int
}

// New creates a new schedule service
func New(repo ScheduledPostRepository, profiles ProfileDirectory, publisher Publisher, batchSize int, logger *slog.Logger) *Service {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &Service{
		repo:      repo,
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
		batchSize: batchSize,
	}
}

// CreateInput represents input for scheduling a post
type CreateInput struct {
	ProfileID    string
	Content      entity.Content
	ScheduledFor time.Time
}

// Create enqueues a new publish job
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.ScheduledPost, error) {
	if _, _, err := s.profiles.Resolve(ctx, in.ProfileID); err != nil {
		return nil, err
	}

	p := &entity.ScheduledPost{
		ID:           uuid.New().String(),
		ProfileID:    in.ProfileID,
		Content:      in.Content,
		ScheduledFor: in.ScheduledFor,
		Status:       entity.DispatchStatusPending,
		CreatedAt:    time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating scheduled post: %w", err)
	}

	return p, nil
}

// GetByID retrieves a scheduled post by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting scheduled post: %w", err)
	}
	if p == nil {
		return nil, entity.ErrScheduledPostNotFound
	}
	return p, nil
}

// Delete removes a scheduled post. Sent posts stay deletable; removing the
// record does not recall the published content.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting scheduled post: %w", err)
	}
	if p == nil {
		return entity.ErrScheduledPostNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting scheduled post: %w", err)
	}

	return nil
}

// List retrieves scheduled posts, soonest first
func (s *Service) List(ctx context.Context, profileID string, status entity.DispatchStatus) ([]entity.ScheduledPost, error) {
	posts, err := s.repo.List(ctx, profileID, status)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled posts: %w", err)
	}
	return posts, nil
}

// Dispatch delivers one pending post immediately, regardless of its
// scheduled time
func (s *Service) Dispatch(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting scheduled post: %w", err)
	}
	if p == nil {
		return nil, entity.ErrScheduledPostNotFound
	}
	if p.Status == entity.DispatchStatusSent {
		return nil, entity.ErrAlreadyDispatched
	}

	if err := s.dispatch(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ProcessDuePosts delivers every pending post whose scheduled time has
// passed. One failing post does not stop the batch.
func (s *Service) ProcessDuePosts(ctx context.Context) error {
	due, err := s.repo.ListDue(ctx, time.Now(), s.batchSize)
	if err != nil {
		return fmt.Errorf("listing due posts: %w", err)
	}

	if len(due) == 0 {
		return nil
	}

	s.logger.Info("dispatching due posts", "count", len(due))

	for i := range due {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.dispatch(ctx, &due[i]); err != nil {
			s.logger.Error("dispatch failed", "scheduled_post_id", due[i].ID, "error", err)
		}
	}

	return nil
}

func (s *Service) dispatch(ctx context.Context, p *entity.ScheduledPost) error {
	platform, handle, err := s.profiles.Resolve(ctx, p.ProfileID)
	if err != nil {
		s.fail(ctx, p, err)
		return fmt.Errorf("resolving profile: %w", err)
	}

	externalID, err := s.publisher.Publish(ctx, platform, handle, p.Content, p.ScheduledFor)
	if err != nil {
		s.fail(ctx, p, err)
		return fmt.Errorf("publishing: %w", err)
	}

	if err := s.repo.MarkSent(ctx, p.ID, externalID); err != nil {
		return fmt.Errorf("marking sent: %w", err)
	}

	p.Status = entity.DispatchStatusSent
	p.ExternalID = externalID
	p.ErrorMessage = ""

	return nil
}

func (s *Service) fail(ctx context.Context, p *entity.ScheduledPost, cause error) {
	if err := s.repo.MarkFailed(ctx, p.ID, cause.Error()); err != nil {
		s.logger.Error("marking failed", "scheduled_post_id", p.ID, "error", err)
		return
	}
	p.Status = entity.DispatchStatusFailed
	p.ErrorMessage = cause.Error()
}
