package policy

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/launch/dao"
	"github.com/vadim/contentdesk/internal/domain/launch/entity"
	"github.com/vadim/contentdesk/internal/domain/launch/service"
)

// Policy orchestrates launch use-cases on top of the query cache
type Policy struct {
	svc   *service.Service
	store *cache.Store
	ttl   time.Duration
}

// New creates a new launch policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration) *Policy {
	return &Policy{svc: svc, store: store, ttl: ttl}
}

// CreateLaunch creates a launch and inserts it into the cached list
func (p *Policy) CreateLaunch(ctx context.Context, in service.CreateInput) (*entity.Launch, error) {
	launch, err := p.svc.CreateLaunch(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyLaunches, func(items []entity.Launch) []entity.Launch {
		// List is ordered by start date, newest first.
		return cache.InsertSorted(items, *launch, func(a, b entity.Launch) bool {
			return a.StartDate.After(b.StartDate)
		})
	})
	p.store.Put(cache.Launch(launch.ID), *launch)

	return launch, nil
}

// GetLaunch retrieves a launch through the query cache
func (p *Policy) GetLaunch(ctx context.Context, id string) (*entity.Launch, error) {
	launch, err := cache.Read(ctx, p.store, cache.Launch(id), p.ttl, func(ctx context.Context) (entity.Launch, error) {
		got, err := p.svc.GetByID(ctx, id)
		if err != nil {
			return entity.Launch{}, err
		}
		return *got, nil
	})
	if err != nil {
		return nil, err
	}
	return &launch, nil
}

// UpdateLaunch updates a launch and propagates it into cached lists
func (p *Policy) UpdateLaunch(ctx context.Context, in service.UpdateInput) (*entity.Launch, error) {
	launch, err := p.svc.UpdateLaunch(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.ApplyLists(p.store, cache.PrefixLaunches, func(items []entity.Launch) []entity.Launch {
		return cache.Replace(items, func(e entity.Launch) bool { return e.ID == launch.ID }, *launch)
	})
	p.store.Put(cache.Launch(launch.ID), *launch)

	return launch, nil
}

// DeleteLaunch deletes a launch with its phases and drops every view that
// referenced it
func (p *Policy) DeleteLaunch(ctx context.Context, id string) error {
	if err := p.svc.DeleteLaunch(ctx, id); err != nil {
		return err
	}

	cache.ApplyLists(p.store, cache.PrefixLaunches, func(items []entity.Launch) []entity.Launch {
		return cache.Remove(items, func(e entity.Launch) bool { return e.ID == id })
	})
	p.store.Drop(cache.Launch(id), cache.Phases(id))
	// The cascade detached posts and dropped phases; every view and entry
	// that may hold them must refetch.
	p.store.Mutated(cache.EntityLaunch)
	p.store.Mutated(cache.EntityPhase)

	return nil
}

// ListLaunches retrieves launches; the unfiltered list goes through the
// query cache
func (p *Policy) ListLaunches(ctx context.Context, filter dao.LaunchFilter) ([]entity.Launch, error) {
	if filter == (dao.LaunchFilter{}) {
		return cache.Read(ctx, p.store, cache.KeyLaunches, p.ttl, func(ctx context.Context) ([]entity.Launch, error) {
			return p.svc.ListLaunches(ctx, dao.LaunchFilter{})
		})
	}
	return p.svc.ListLaunches(ctx, filter)
}

// CreatePhase creates a phase and invalidates its launch's phase list
func (p *Policy) CreatePhase(ctx context.Context, in service.CreatePhaseInput) (*entity.Phase, error) {
	phase, err := p.svc.CreatePhase(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.Phases(phase.LaunchID), func(items []entity.Phase) []entity.Phase {
		return cache.InsertSorted(items, *phase, func(a, b entity.Phase) bool {
			return a.StartDate.Before(b.StartDate)
		})
	})

	return phase, nil
}

// UpdatePhase updates a phase and propagates it into the cached phase list
func (p *Policy) UpdatePhase(ctx context.Context, in service.UpdatePhaseInput) (*entity.Phase, error) {
	phase, err := p.svc.UpdatePhase(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.Phases(phase.LaunchID), func(items []entity.Phase) []entity.Phase {
		return cache.Replace(items, func(e entity.Phase) bool { return e.ID == phase.ID }, *phase)
	})

	return phase, nil
}

// DeletePhase removes a phase from store and cache
func (p *Policy) DeletePhase(ctx context.Context, id string) error {
	phase, err := p.svc.GetPhase(ctx, id)
	if err != nil {
		return err
	}

	if err := p.svc.DeletePhase(ctx, id); err != nil {
		return err
	}

	cache.Apply(p.store, cache.Phases(phase.LaunchID), func(items []entity.Phase) []entity.Phase {
		return cache.Remove(items, func(e entity.Phase) bool { return e.ID == id })
	})

	return nil
}

// ListPhases retrieves the phases of one launch through the query cache
func (p *Policy) ListPhases(ctx context.Context, launchID string) ([]entity.Phase, error) {
	return cache.Read(ctx, p.store, cache.Phases(launchID), p.ttl, func(ctx context.Context) ([]entity.Phase, error) {
		return p.svc.ListPhases(ctx, launchID)
	})
}
