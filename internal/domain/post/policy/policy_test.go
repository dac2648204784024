package policy

import (
	"context"
	"testing"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/post/dao"
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	"github.com/vadim/contentdesk/internal/domain/post/service"
)

type fakeRepo struct {
	posts map[string]entity.Post
	lists int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: make(map[string]entity.Post)}
}

func (r *fakeRepo) Create(_ context.Context, p *entity.Post) error {
	r.posts[p.ID] = *p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) Update(_ context.Context, p *entity.Post) error {
	r.posts[p.ID] = *p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter dao.PostFilter, _ dao.ListOptions) ([]entity.Post, error) {
	r.lists++
	var out []entity.Post
	for _, p := range r.posts {
		if filter.LaunchID != "" && (p.LaunchID == nil || *p.LaunchID != filter.LaunchID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]entity.Post, error) {
	r.lists++
	var out []entity.Post
	for _, p := range r.posts {
		if p.PostAt.Before(from) || p.PostAt.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status entity.Status) error {
	p := r.posts[id]
	p.Status = status
	r.posts[id] = p
	return nil
}

func (r *fakeRepo) Count(_ context.Context, _ dao.PostFilter) (int64, error) {
	return int64(len(r.posts)), nil
}

func newPolicy(t *testing.T) (*Policy, *fakeRepo, *cache.Store) {
	t.Helper()
	repo := newFakeRepo()
	store := cache.New()
	return New(service.New(repo), store, time.Minute), repo, store
}

func createInput(at time.Time) service.CreateInput {
	return service.CreateInput{
		PostAt:      at,
		ProfileIDs:  []string{"p1"},
		ContentType: entity.ContentTypePost,
	}
}

func TestCreateInsertsIntoCachedListInOrder(t *testing.T) {
	ctx := context.Background()
	p, repo, _ := newPolicy(t)

	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 12, 0, 0, 0, time.UTC)
	}

	if _, err := p.CreatePost(ctx, createInput(day(10))); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Prime the cached list.
	if _, err := p.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	fetches := repo.lists

	if _, err := p.CreatePost(ctx, createInput(day(5))); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := p.CreatePost(ctx, createInput(day(20))); err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := p.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lists != fetches {
		t.Fatalf("list served %d extra fetches, creates must patch the cache", repo.lists-fetches)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].PostAt.Before(posts[i-1].PostAt) {
			t.Fatalf("cached list out of order at %d", i)
		}
	}
}

func TestChangeStatusPatchesEveryCachedList(t *testing.T) {
	ctx := context.Background()
	p, repo, _ := newPolicy(t)

	launchID := "l1"
	in := createInput(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	in.LaunchID = &launchID
	created, err := p.CreatePost(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Prime both the global and the launch-scoped list.
	if _, err := p.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := p.ListByLaunch(ctx, launchID); err != nil {
		t.Fatalf("list by launch: %v", err)
	}
	fetches := repo.lists

	if _, err := p.ChangeStatus(ctx, created.ID, entity.StatusPending); err != nil {
		t.Fatalf("change status: %v", err)
	}

	byLaunch, err := p.ListByLaunch(ctx, launchID)
	if err != nil {
		t.Fatalf("list by launch: %v", err)
	}
	if repo.lists != fetches {
		t.Fatal("status change must patch cached lists, not refetch them")
	}
	if len(byLaunch) != 1 || byLaunch[0].Status != entity.StatusPending {
		t.Fatalf("byLaunch = %+v", byLaunch)
	}
}

func TestChangeStatusRejectsIllegalTransition(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPolicy(t)

	created, err := p.CreatePost(ctx, createInput(time.Now()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := p.ChangeStatus(ctx, created.ID, entity.StatusPublished); err != entity.ErrStatusTransition {
		t.Fatalf("got %v, want ErrStatusTransition", err)
	}
}

func TestDeleteRemovesFromCachedLists(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPolicy(t)

	created, err := p.CreatePost(ctx, createInput(time.Now()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := p.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := p.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	posts, err := p.ListPosts(ctx, dao.PostFilter{}, dao.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("deleted post still cached: %+v", posts)
	}

	if _, err := p.GetPost(ctx, created.ID); err != entity.ErrPostNotFound {
		t.Fatalf("got %v, want ErrPostNotFound", err)
	}
}

func TestUpdateInvalidatesScopedViews(t *testing.T) {
	ctx := context.Background()
	p, repo, _ := newPolicy(t)

	launchID := "l1"
	in := createInput(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	in.LaunchID = &launchID
	created, err := p.CreatePost(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := p.ListByLaunch(ctx, launchID); err != nil {
		t.Fatalf("list by launch: %v", err)
	}
	fetches := repo.lists

	// Detach the post from the launch; the launch view must refetch.
	if _, err := p.UpdatePost(ctx, service.UpdateInput{ID: created.ID, ClearLaunch: true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	byLaunch, err := p.ListByLaunch(ctx, launchID)
	if err != nil {
		t.Fatalf("list by launch: %v", err)
	}
	if repo.lists == fetches {
		t.Fatal("launch view must be refetched after a membership change")
	}
	if len(byLaunch) != 0 {
		t.Fatalf("byLaunch = %+v", byLaunch)
	}
}

func TestCalendarBucketsCachedRange(t *testing.T) {
	ctx := context.Background()
	p, repo, _ := newPolicy(t)

	if _, err := p.CreatePost(ctx, createInput(time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC))); err != nil {
		t.Fatalf("create: %v", err)
	}

	buckets, err := p.Calendar(ctx, 2024, time.June)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if got := buckets["2024-06-15"]; len(got) != 1 {
		t.Fatalf("2024-06-15 = %+v", got)
	}
	fetches := repo.lists

	// A second open of the same month is served from the cache.
	if _, err := p.Calendar(ctx, 2024, time.June); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if repo.lists != fetches {
		t.Fatal("second calendar read must hit the cache")
	}
}
