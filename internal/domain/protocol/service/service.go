package service

import (
	"context"
	"fmt"

	"github.com/vadim/contentdesk/internal/domain/protocol/entity"
)

// ProtocolRepository defines the interface for protocol storage
type ProtocolRepository interface {
	Create(ctx context.Context, p *entity.Protocol) error
	GetByID(ctx context.Context, id string) (*entity.Protocol, error)
	Update(ctx context.Context, p *entity.Protocol) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]entity.Protocol, error)
}

// Service handles protocol business logic
type Service struct {
	repo ProtocolRepository
}

// New creates a new protocol service
func New(repo ProtocolRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput represents input for creating a protocol
type CreateInput struct {
	Title       string
	Description string
	Type        entity.ProtocolType
	Content     string
	Active      bool
}

// Create creates a new protocol
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Protocol, error) {
	p := &entity.Protocol{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Content:     in.Content,
		Active:      in.Active,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating protocol: %w", err)
	}

	return p, nil
}

// GetByID retrieves a protocol by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Protocol, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting protocol: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProtocolNotFound
	}
	return p, nil
}

// UpdateInput represents input for updating a protocol
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Type        *entity.ProtocolType
	Content     *string
	Active      *bool
}

// Update updates an existing protocol
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Protocol, error) {
	p, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("getting protocol: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProtocolNotFound
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Active != nil {
		p.Active = *in.Active
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating protocol: %w", err)
	}

	return p, nil
}

// Delete removes a protocol
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting protocol: %w", err)
	}
	if p == nil {
		return entity.ErrProtocolNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting protocol: %w", err)
	}

	return nil
}

// List retrieves protocols, newest first
func (s *Service) List(ctx context.Context, activeOnly bool) ([]entity.Protocol, error) {
	protocols, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing protocols: %w", err)
	}
	return protocols, nil
}
