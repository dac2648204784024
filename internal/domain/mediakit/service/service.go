package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vadim/contentdesk/internal/domain/mediakit/entity"
	"github.com/vadim/contentdesk/internal/storage"
)

// ResourceRepository defines the interface for resource storage
type ResourceRepository interface {
	Create(ctx context.Context, res *entity.Resource) error
	GetByID(ctx context.Context, id string) (*entity.Resource, error)
	Update(ctx context.Context, res *entity.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, category string) ([]entity.Resource, error)
}

// AssetStore defines the interface for binary asset storage. Implemented by
// the S3 storage layer.
type AssetStore interface {
	Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadOutput, error)
	Delete(ctx context.Context, key string) error
}

// Service handles media kit business logic
type Service struct {
	repo   ResourceRepository
	assets AssetStore
	logger *slog.Logger
}

// New creates a new media kit service
func New(repo ResourceRepository, assets AssetStore, logger *slog.Logger) *Service {
	return &Service{repo: repo, assets: assets, logger: logger}
}

// CreateInput represents input for registering a resource that already has
// a URL (hosted elsewhere)
type CreateInput struct {
	Name        string
	Description string
	Category    string
	URL         string
	Format      string
	FileSize    int64
	Tags        []string
	Active      bool
}

// Create registers a new resource
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Resource, error) {
	res := &entity.Resource{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		URL:         in.URL,
		Format:      in.Format,
		FileSize:    in.FileSize,
		Tags:        in.Tags,
		Active:      in.Active,
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return res, nil
}

// UploadInput represents input for uploading a resource asset
type UploadInput struct {
	Name        string
	Description string
	Category    string
	Tags        []string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the asset in object storage and registers the resource
// pointing at it.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*entity.Resource, error) {
	if in.Size == 0 || in.Body == nil {
		return nil, entity.ErrEmptyUpload
	}

	out, err := s.assets.Upload(ctx, storage.UploadInput{
		Reader:      in.Body,
		ContentType: in.ContentType,
		Size:        in.Size,
		Filename:    in.Filename,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading asset: %w", err)
	}

	res := &entity.Resource{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		URL:         out.URL,
		StorageKey:  out.Key,
		Format:      formatFromContentType(in.ContentType, in.Filename),
		FileSize:    out.Size,
		Tags:        in.Tags,
		Active:      true,
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, res); err != nil {
		// The asset is already in the bucket; clean it up so a failed
		// insert does not leak storage.
		if derr := s.assets.Delete(ctx, out.Key); derr != nil {
			s.logger.Warn("orphaned asset cleanup failed", "key", out.Key, "error", derr)
		}
		return nil, fmt.Errorf("registering resource: %w", err)
	}

	return res, nil
}

// GetByID retrieves a resource by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	if res == nil {
		return nil, entity.ErrResourceNotFound
	}
	return res, nil
}

// UpdateInput represents input for updating a resource
type UpdateInput struct {
	ID          string
	Name        *string
	Description *string
	Category    *string
	URL         *string
	Format      *string
	Tags        []string
	Active      *bool
}

// Update updates an existing resource
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Resource, error) {
	res, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	if res == nil {
		return nil, entity.ErrResourceNotFound
	}

	if in.Name != nil {
		res.Name = *in.Name
	}
	if in.Description != nil {
		res.Description = *in.Description
	}
	if in.Category != nil {
		res.Category = *in.Category
	}
	if in.URL != nil {
		res.URL = *in.URL
	}
	if in.Format != nil {
		res.Format = *in.Format
	}
	if in.Tags != nil {
		res.Tags = in.Tags
	}
	if in.Active != nil {
		res.Active = *in.Active
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, fmt.Errorf("updating resource: %w", err)
	}

	return res, nil
}

// Delete removes a resource and its stored asset, when we own one
func (s *Service) Delete(ctx context.Context, id string) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting resource: %w", err)
	}
	if res == nil {
		return entity.ErrResourceNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}

	if res.StorageKey != "" {
		if err := s.assets.Delete(ctx, res.StorageKey); err != nil {
			// The row is gone; the stray object is a storage leak, not
			// a user-visible failure.
			s.logger.Warn("asset delete failed", "key", res.StorageKey, "error", err)
		}
	}

	return nil
}

// List retrieves resources, newest first
func (s *Service) List(ctx context.Context, category string) ([]entity.Resource, error) {
	resources, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return resources, nil
}

func formatFromContentType(contentType, filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i+1:])
	}
	if i := strings.Index(contentType, "/"); i >= 0 {
		return contentType[i+1:]
	}
	return contentType
}
