package service

import (
	"context"
	"fmt"

	"github.com/vadim/contentdesk/internal/domain/product/entity"
)

// ProductRepository defines the interface for product storage
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Product, error)
}

// Service handles product business logic
type Service struct {
	repo ProductRepository
}

// New creates a new product service
func New(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput represents input for creating a product
type CreateInput struct {
	Name            string
	Description     string
	CreativeConcept string
	LandingURL      string
	CommKitURL      string
	Countries       []string
	Hashtags        []string
	SalesObjectives []string
	Briefing        string
}

// Create creates a new product
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:            in.Name,
		Description:     in.Description,
		CreativeConcept: in.CreativeConcept,
		LandingURL:      in.LandingURL,
		CommKitURL:      in.CommKitURL,
		Countries:       in.Countries,
		Hashtags:        in.Hashtags,
		SalesObjectives: in.SalesObjectives,
		Briefing:        in.Briefing,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return p, nil
}

// GetByID retrieves a product by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProductNotFound
	}
	return p, nil
}

// UpdateInput represents input for updating a product
type UpdateInput struct {
	ID              string
	Name            *string
	Description     *string
	CreativeConcept *string
	LandingURL      *string
	CommKitURL      *string
	Countries       []string
	Hashtags        []string
	SalesObjectives []string
	Briefing        *string
}

// Update updates an existing product
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Product, error) {
	p, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	if p == nil {
		return nil, entity.ErrProductNotFound
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.CreativeConcept != nil {
		p.CreativeConcept = *in.CreativeConcept
	}
	if in.LandingURL != nil {
		p.LandingURL = *in.LandingURL
	}
	if in.CommKitURL != nil {
		p.CommKitURL = *in.CommKitURL
	}
	if in.Countries != nil {
		p.Countries = in.Countries
	}
	if in.Hashtags != nil {
		p.Hashtags = in.Hashtags
	}
	if in.SalesObjectives != nil {
		p.SalesObjectives = in.SalesObjectives
	}
	if in.Briefing != nil {
		p.Briefing = *in.Briefing
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return p, nil
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting product: %w", err)
	}
	if p == nil {
		return entity.ErrProductNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}

// List retrieves products, newest first
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}
