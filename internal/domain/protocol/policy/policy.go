package policy

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/protocol/entity"
	"github.com/vadim/contentdesk/internal/domain/protocol/service"
)

// Policy orchestrates protocol use-cases on top of the query cache
type Policy struct {
	svc   *service.Service
	store *cache.Store
	ttl   time.Duration
}

// New creates a new protocol policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration) *Policy {
	return &Policy{svc: svc, store: store, ttl: ttl}
}

// CreateProtocol creates a protocol and inserts it into the cached list
func (p *Policy) CreateProtocol(ctx context.Context, in service.CreateInput) (*entity.Protocol, error) {
	proto, err := p.svc.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyProtocols, func(items []entity.Protocol) []entity.Protocol {
		// List is newest-first.
		return append([]entity.Protocol{*proto}, items...)
	})

	return proto, nil
}

// GetProtocol retrieves a protocol by ID
func (p *Policy) GetProtocol(ctx context.Context, id string) (*entity.Protocol, error) {
	return p.svc.GetByID(ctx, id)
}

// UpdateProtocol updates a protocol and propagates it into cached lists
func (p *Policy) UpdateProtocol(ctx context.Context, in service.UpdateInput) (*entity.Protocol, error) {
	proto, err := p.svc.Update(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyProtocols, func(items []entity.Protocol) []entity.Protocol {
		return cache.Replace(items, func(e entity.Protocol) bool { return e.ID == proto.ID }, *proto)
	})

	return proto, nil
}

// DeleteProtocol deletes a protocol and removes it from cached lists
func (p *Policy) DeleteProtocol(ctx context.Context, id string) error {
	if err := p.svc.Delete(ctx, id); err != nil {
		return err
	}

	cache.Apply(p.store, cache.KeyProtocols, func(items []entity.Protocol) []entity.Protocol {
		return cache.Remove(items, func(e entity.Protocol) bool { return e.ID == id })
	})

	return nil
}

// ListProtocols retrieves protocols through the query cache
func (p *Policy) ListProtocols(ctx context.Context, activeOnly bool) ([]entity.Protocol, error) {
	if activeOnly {
		// Rare view, not worth its own cache key.
		return p.svc.List(ctx, true)
	}
	return cache.Read(ctx, p.store, cache.KeyProtocols, p.ttl, func(ctx context.Context) ([]entity.Protocol, error) {
		return p.svc.List(ctx, false)
	})
}
