package policy

import (
	"context"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/post/dao"
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	"github.com/vadim/contentdesk/internal/domain/post/service"
	"github.com/vadim/contentdesk/internal/domain/post/view"
)

// Policy orchestrates post use-cases on top of the query cache. List views
// (all posts, per-launch, per-range) are cached; mutations patch the cached
// lists in place where membership is unaffected and invalidate the views
// whose membership they may have changed.
type Policy struct {
	svc   *service.Service
	store *cache.Store
	ttl   time.Duration
}

// New creates a new post policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration) *Policy {
	return &Policy{svc: svc, store: store, ttl: ttl}
}

// CreatePost creates a post and inserts it into the cached post list
func (p *Policy) CreatePost(ctx context.Context, in service.CreateInput) (*entity.Post, error) {
	post, err := p.svc.CreatePost(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyPosts, func(items []entity.Post) []entity.Post {
		return cache.InsertSorted(items, *post, func(a, b entity.Post) bool {
			return a.PostAt.Before(b.PostAt)
		})
	})
	p.store.Put(cache.Post(post.ID), *post)
	// Launch- and range-scoped views gain a member only on refetch.
	p.store.Mutated(cache.EntityPost)

	return post, nil
}

// GetPost retrieves a post through the query cache
func (p *Policy) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := cache.Read(ctx, p.store, cache.Post(id), p.ttl, func(ctx context.Context) (entity.Post, error) {
		got, err := p.svc.GetByID(ctx, id)
		if err != nil {
			return entity.Post{}, err
		}
		return *got, nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost updates a post. The edit may move the post across launch and
// date-range views, so those are invalidated rather than patched.
func (p *Policy) UpdatePost(ctx context.Context, in service.UpdateInput) (*entity.Post, error) {
	post, err := p.svc.UpdatePost(ctx, in)
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyPosts, func(items []entity.Post) []entity.Post {
		return cache.Replace(items, func(e entity.Post) bool { return e.ID == post.ID }, *post)
	})
	p.store.Put(cache.Post(post.ID), *post)
	p.store.Mutated(cache.EntityPost)

	return post, nil
}

// ChangeStatus advances a post along the editorial workflow. A status change
// never moves a post between list views, so every cached list is patched in
// place instead of refetched.
func (p *Policy) ChangeStatus(ctx context.Context, id string, next entity.Status) (*entity.Post, error) {
	post, err := p.svc.ChangeStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	cache.ApplyLists(p.store, cache.PrefixPosts, func(items []entity.Post) []entity.Post {
		return cache.Replace(items, func(e entity.Post) bool { return e.ID == post.ID }, *post)
	})
	p.store.Put(cache.Post(post.ID), *post)

	return post, nil
}

// DeletePost deletes a post and removes it from every cached list
func (p *Policy) DeletePost(ctx context.Context, id string) error {
	if err := p.svc.DeletePost(ctx, id); err != nil {
		return err
	}

	cache.ApplyLists(p.store, cache.PrefixPosts, func(items []entity.Post) []entity.Post {
		return cache.Remove(items, func(e entity.Post) bool { return e.ID == id })
	})
	p.store.Drop(cache.Post(id))
	p.store.Mutated(cache.EntityPost)

	return nil
}

// ListPosts retrieves posts. The unfiltered list is served through the query
// cache; filtered lists go straight to the database since every filter
// combination would otherwise be its own cache entry.
func (p *Policy) ListPosts(ctx context.Context, filter dao.PostFilter, opts dao.ListOptions) ([]entity.Post, error) {
	if filter == (dao.PostFilter{}) && opts == (dao.ListOptions{}) {
		return cache.Read(ctx, p.store, cache.KeyPosts, p.ttl, func(ctx context.Context) ([]entity.Post, error) {
			return p.svc.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{})
		})
	}
	return p.svc.ListPosts(ctx, filter, opts)
}

// ListByLaunch retrieves the posts of one launch through the query cache
func (p *Policy) ListByLaunch(ctx context.Context, launchID string) ([]entity.Post, error) {
	return cache.Read(ctx, p.store, cache.PostsByLaunch(launchID), p.ttl, func(ctx context.Context) ([]entity.Post, error) {
		return p.svc.ListPosts(ctx, dao.PostFilter{LaunchID: launchID}, dao.ListOptions{})
	})
}

// ListByDateRange retrieves posts inside the inclusive [from, to] range
// through the query cache
func (p *Policy) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error) {
	if to.Before(from) {
		return nil, entity.ErrInvalidDateRange
	}
	return cache.Read(ctx, p.store, cache.PostsByRange(from, to), p.ttl, func(ctx context.Context) ([]entity.Post, error) {
		return p.svc.ListByDateRange(ctx, from, to)
	})
}

// Calendar returns the posts of one month bucketed by UTC calendar day
func (p *Policy) Calendar(ctx context.Context, year int, month time.Month) (map[string][]entity.Post, error) {
	r := view.MonthRange(year, month)
	posts, err := p.ListByDateRange(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return view.DayBuckets(year, month, posts), nil
}
