package policy

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/mediakit/entity"
	"github.com/vadim/contentdesk/internal/domain/mediakit/service"
)

// Policy orchestrates media kit use-cases on top of the query cache
type Policy struct {
	svc   *service.Service
	store *cache.Store
	ttl   time.Duration
}

// New creates a new media kit policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration) *Policy {
	return &Policy{svc: svc, store: store, ttl: ttl}
}

// CreateResource registers a resource and inserts it into the cached list
func (p *Policy) CreateResource(ctx context.Context, in service.CreateInput) (*entity.Resource, error) {
	res, err := p.svc.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	p.prepend(res)
	return res, nil
}

// UploadResource uploads an asset and registers the resulting resource
func (p *Policy) UploadResource(ctx context.Context, in service.UploadInput) (*entity.Resource, error) {
	res, err := p.svc.Upload(ctx, in)
	if err != nil {
		return nil, err
	}

	p.prepend(res)
	return res, nil
}

// GetResource retrieves a resource by ID
func (p *Policy) GetResource(ctx context.Context, id string) (*entity.Resource, error) {
	return p.svc.GetByID(ctx, id)
}

// UpdateResource updates a resource and propagates it into cached lists
func (p *Policy) UpdateResource(ctx context.Context, in service.UpdateInput) (*entity.Resource, error) {
	res, err := p.svc.Update(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyMediaKit, func(items []entity.Resource) []entity.Resource {
		return cache.Replace(items, func(e entity.Resource) bool { return e.ID == res.ID }, *res)
	})

	return res, nil
}

// DeleteResource deletes a resource and removes it from cached lists
func (p *Policy) DeleteResource(ctx context.Context, id string) error {
	if err := p.svc.Delete(ctx, id); err != nil {
		return err
	}

	cache.Apply(p.store, cache.KeyMediaKit, func(items []entity.Resource) []entity.Resource {
		return cache.Remove(items, func(e entity.Resource) bool { return e.ID == id })
	})

	return nil
}

// ListResources retrieves resources through the query cache. Category-scoped
// lists bypass it; the full list is the hot path.
func (p *Policy) ListResources(ctx context.Context, category string) ([]entity.Resource, error) {
	if category != "" {
		return p.svc.List(ctx, category)
	}
	return cache.Read(ctx, p.store, cache.KeyMediaKit, p.ttl, func(ctx context.Context) ([]entity.Resource, error) {
		return p.svc.List(ctx, "")
	})
}

func (p *Policy) prepend(res *entity.Resource) {
	cache.Apply(p.store, cache.KeyMediaKit, func(items []entity.Resource) []entity.Resource {
		// List is newest-first.
		return append([]entity.Resource{*res}, items...)
	})
}
