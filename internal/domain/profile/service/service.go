package service

import (
	"context"
	"fmt"

	"github.com/vadim/contentdesk/internal/domain/profile/entity"
)

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	UpdateMetrics(ctx context.Context, id string, followers int64, growthRate, engagementRate float64) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]entity.Profile, error)
}

// Service handles profile business logic
type Service struct {
	repo ProfileRepository
}

// New creates a new profile service
func New(repo ProfileRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput represents input for creating a profile
type CreateInput struct {
	Name     string
	Handle   string
	Platform entity.Platform
	Active   bool
	Notes    string
}

// Create creates a new profile
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Profile, error) {
	p := &entity.Profile{
		Name:     in.Name,
		Handle:   in.Handle,
		Platform: in.Platform,
		Active:   in.Active,
		Notes:    in.Notes,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	return p, nil
}

// GetByID retrieves a profile by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProfileNotFound
	}
	return p, nil
}

// UpdateInput represents input for updating a profile
type UpdateInput struct {
	ID       string
	Name     *string
	Handle   *string
	Platform *entity.Platform
	Active   *bool
	Notes    *string
}

// Update updates an existing profile
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Profile, error) {
	p, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProfileNotFound
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Handle != nil {
		p.Handle = *in.Handle
	}
	if in.Platform != nil {
		p.Platform = *in.Platform
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return p, nil
}

// SetActive toggles the active flag. The common lifecycle is toggling, not
// deletion; delete exists for cleanup of profiles created by mistake.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*entity.Profile, error) {
	return s.Update(ctx, UpdateInput{ID: id, Active: &active})
}

// StoreMetrics persists the latest upstream metrics onto the profile row
func (s *Service) StoreMetrics(ctx context.Context, id string, followers int64, growthRate, engagementRate float64) error {
	if err := s.repo.UpdateMetrics(ctx, id, followers, growthRate, engagementRate); err != nil {
		return fmt.Errorf("storing metrics: %w", err)
	}
	return nil
}

// Delete removes a profile
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	if p == nil {
		return entity.ErrProfileNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	return nil
}

// List retrieves profiles, newest first
func (s *Service) List(ctx context.Context, activeOnly bool) ([]entity.Profile, error) {
	profiles, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}
