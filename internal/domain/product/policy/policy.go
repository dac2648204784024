package policy

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/product/entity"
	"github.com/vadim/contentdesk/internal/domain/product/service"
)

// Policy orchestrates product use-cases on top of the query cache
type Policy struct {
	svc   *service.Service
	store *cache.Store
	ttl   time.Duration
}

// New creates a new product policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration) *Policy {
	return &Policy{svc: svc, store: store, ttl: ttl}
}

// CreateProduct creates a product and inserts it into the cached list
func (p *Policy) CreateProduct(ctx context.Context, in service.CreateInput) (*entity.Product, error) {
	prod, err := p.svc.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyProducts, func(items []entity.Product) []entity.Product {
		// List is newest-first.
		return append([]entity.Product{*prod}, items...)
	})

	return prod, nil
}

// GetProduct retrieves a product by ID
func (p *Policy) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return p.svc.GetByID(ctx, id)
}

// UpdateProduct updates a product and propagates it into cached lists
func (p *Policy) UpdateProduct(ctx context.Context, in service.UpdateInput) (*entity.Product, error) {
	prod, err := p.svc.Update(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.ApplyLists(p.store, cache.PrefixProducts, func(items []entity.Product) []entity.Product {
		return cache.Replace(items, func(e entity.Product) bool { return e.ID == prod.ID }, *prod)
	})

	return prod, nil
}

// DeleteProduct deletes a product and removes it from cached lists
func (p *Policy) DeleteProduct(ctx context.Context, id string) error {
	if err := p.svc.Delete(ctx, id); err != nil {
		return err
	}

	cache.ApplyLists(p.store, cache.PrefixProducts, func(items []entity.Product) []entity.Product {
		return cache.Remove(items, func(e entity.Product) bool { return e.ID == id })
	})

	return nil
}

// ListProducts retrieves products through the query cache
func (p *Policy) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return cache.Read(ctx, p.store, cache.KeyProducts, p.ttl, func(ctx context.Context) ([]entity.Product, error) {
		return p.svc.List(ctx)
	})
}
