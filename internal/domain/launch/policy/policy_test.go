package policy

import (
	"context"
	"testing"
	"time"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/launch/dao"
	"github.com/vadim/contentdesk/internal/domain/launch/entity"
	"github.com/vadim/contentdesk/internal/domain/launch/service"
)

type fakeLaunchRepo struct {
	launches map[string]entity.Launch
}

func (r *fakeLaunchRepo) Create(ctx context.Context, launch *entity.Launch) error {
	r.launches[launch.ID] = *launch
	return nil
}

func (r *fakeLaunchRepo) GetByID(ctx context.Context, id string) (*entity.Launch, error) {
	l, ok := r.launches[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLaunchRepo) Update(ctx context.Context, launch *entity.Launch) error {
	r.launches[launch.ID] = *launch
	return nil
}

func (r *fakeLaunchRepo) Delete(ctx context.Context, id string) error {
	delete(r.launches, id)
	return nil
}

func (r *fakeLaunchRepo) List(ctx context.Context, filter dao.LaunchFilter) ([]entity.Launch, error) {
	out := []entity.Launch{}
	for _, l := range r.launches {
		out = append(out, l)
	}
	return out, nil
}

type fakePhaseRepo struct {
	phases map[string]entity.Phase
}

func (r *fakePhaseRepo) Create(ctx context.Context, phase *entity.Phase) error {
	r.phases[phase.ID] = *phase
	return nil
}

func (r *fakePhaseRepo) GetByID(ctx context.Context, id string) (*entity.Phase, error) {
	p, ok := r.phases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePhaseRepo) Update(ctx context.Context, phase *entity.Phase) error {
	r.phases[phase.ID] = *phase
	return nil
}

func (r *fakePhaseRepo) Delete(ctx context.Context, id string) error {
	delete(r.phases, id)
	return nil
}

func (r *fakePhaseRepo) ListByLaunch(ctx context.Context, launchID string) ([]entity.Phase, error) {
	out := []entity.Phase{}
	for _, p := range r.phases {
		if p.LaunchID == launchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestPolicy(launches map[string]entity.Launch) (*Policy, *cache.Store) {
	launchRepo := &fakeLaunchRepo{launches: launches}
	phaseRepo := &fakePhaseRepo{phases: map[string]entity.Phase{}}
	store := cache.New()
	return New(service.New(launchRepo, phaseRepo), store, time.Minute), store
}

// Deleting a launch detaches its posts in the database, so cached post
// views and single post entries must not keep serving the stale launch id.
func TestDeleteLaunchInvalidatesPostViews(t *testing.T) {
	ctx := context.Background()
	pol, store := newTestPolicy(map[string]entity.Launch{
		"l1": {ID: "l1", Name: "Summer drop"},
	})

	var listFetches, entryFetches int
	readList := func() {
		t.Helper()
		if _, err := cache.Read(ctx, store, cache.KeyPosts, time.Minute, func(ctx context.Context) ([]string, error) {
			listFetches++
			return []string{"p1"}, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	readEntry := func() {
		t.Helper()
		if _, err := cache.Read(ctx, store, cache.Post("p1"), time.Minute, func(ctx context.Context) (string, error) {
			entryFetches++
			return "p1", nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	readList()
	readEntry()
	if listFetches != 1 || entryFetches != 1 {
		t.Fatalf("expected warm reads to fetch once, got list=%d entry=%d", listFetches, entryFetches)
	}

	if err := pol.DeleteLaunch(ctx, "l1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	readList()
	if listFetches != 2 {
		t.Error("global post list should refetch after a launch cascade")
	}
	readEntry()
	if entryFetches != 2 {
		t.Error("single post entries should refetch after a launch cascade")
	}
}

func TestDeleteLaunchDropsPhaseList(t *testing.T) {
	ctx := context.Background()
	pol, store := newTestPolicy(map[string]entity.Launch{
		"l1": {ID: "l1", Name: "Summer drop"},
	})

	var phaseFetches int
	readPhases := func() {
		t.Helper()
		if _, err := cache.Read(ctx, store, cache.Phases("l1"), time.Minute, func(ctx context.Context) ([]string, error) {
			phaseFetches++
			return []string{"ph1", "ph2"}, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	readPhases()
	if phaseFetches != 1 {
		t.Fatalf("expected warm read to fetch once, got %d", phaseFetches)
	}

	if err := pol.DeleteLaunch(ctx, "l1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	readPhases()
	if phaseFetches != 2 {
		t.Error("phase list should refetch after its launch is deleted")
	}
}

func TestDeleteLaunchUnknownID(t *testing.T) {
	pol, _ := newTestPolicy(map[string]entity.Launch{})

	if err := pol.DeleteLaunch(context.Background(), "missing"); err != entity.ErrLaunchNotFound {
		t.Fatalf("expected ErrLaunchNotFound, got %v", err)
	}
}
