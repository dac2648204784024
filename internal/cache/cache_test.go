package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type post struct {
	ID     string
	Status string
	Date   time.Time
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestReadFreshness(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	s := New(WithClock(func() time.Time { return clock }))

	var calls int
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	t.Run("first read fetches", func(t *testing.T) {
		v, err := Read(context.Background(), s, "k", time.Minute, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 1 || calls != 1 {
			t.Fatalf("expected one fetch, got value=%d calls=%d", v, calls)
		}
	})

	t.Run("fresh read served from cache", func(t *testing.T) {
		clock = now.Add(30 * time.Second)
		v, err := Read(context.Background(), s, "k", time.Minute, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 1 || calls != 1 {
			t.Fatalf("expected cached value, got value=%d calls=%d", v, calls)
		}
	})

	t.Run("expired read refetches", func(t *testing.T) {
		clock = now.Add(2 * time.Minute)
		v, err := Read(context.Background(), s, "k", time.Minute, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 2 || calls != 2 {
			t.Fatalf("expected refetch, got value=%d calls=%d", v, calls)
		}
	})

	t.Run("invalidated read refetches before expiry", func(t *testing.T) {
		s.Invalidate("k")
		v, err := Read(context.Background(), s, "k", time.Minute, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 3 || calls != 3 {
			t.Fatalf("expected refetch after invalidation, got value=%d calls=%d", v, calls)
		}
	})
}

func TestReadFailureLeavesStoreUntouched(t *testing.T) {
	s := New()

	boom := errors.New("store unavailable")
	if _, err := Read(context.Background(), s, "k", time.Minute, func(ctx context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// Next read must fetch again, not serve a poisoned entry.
	v, err := Read(context.Background(), s, "k", time.Minute, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestReadCoalescesConcurrentFetches(t *testing.T) {
	s := New()

	var calls int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]string, error) {
		atomic.AddInt64(&calls, 1)
		<-release
		return []string{"a", "b"}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([][]string, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Read(context.Background(), s, "posts:all", time.Minute, fetch)
			if err != nil {
				t.Errorf("reader %d: %v", i, err)
				return
			}
			results[i] = v
		}(i)
	}

	// Give the readers a moment to pile up on the singleflight key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected 1 in-flight fetch, got %d", got)
	}
	for i, r := range results {
		if len(r) != 2 {
			t.Fatalf("reader %d got %v", i, r)
		}
	}
}

func TestApplyListsPropagatesStatusChange(t *testing.T) {
	s := New()

	d := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	global := []post{{ID: "p1", Status: "approved", Date: d}, {ID: "p2", Status: "draft", Date: d}}
	byLaunch := []post{{ID: "p1", Status: "approved", Date: d}}
	s.Put(KeyPosts, global)
	s.Put(PostsByLaunch("l1"), byLaunch)

	// A status update must land in every list view without a refetch.
	updated := post{ID: "p1", Status: "published", Date: d}
	ApplyLists(s, PrefixPosts, func(items []post) []post {
		return Replace(items, func(p post) bool { return p.ID == "p1" }, updated)
	})

	got, err := Read(context.Background(), s, KeyPosts, time.Minute, func(ctx context.Context) ([]post, error) {
		t.Fatal("global list should not refetch")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Status != "published" || got[1].Status != "draft" {
		t.Fatalf("global list not updated: %+v", got)
	}

	got, err = Read(context.Background(), s, PostsByLaunch("l1"), time.Minute, func(ctx context.Context) ([]post, error) {
		t.Fatal("launch list should not refetch")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Status != "published" {
		t.Fatalf("launch list not updated: %+v", got)
	}
}

func TestMutatedInvalidatesDependents(t *testing.T) {
	s := New()
	s.Put(KeyPosts, []post{})
	s.Put(PostsByLaunch("l1"), []post{})
	s.Put(PostsByRange(time.Unix(0, 0), time.Unix(100, 0)), []post{})

	s.Mutated(EntityPost)

	// Launch- and range-scoped views go stale; the global list survives
	// because direct inserts keep it correct.
	var fetched bool
	if _, err := Read(context.Background(), s, PostsByLaunch("l1"), time.Minute, func(ctx context.Context) ([]post, error) {
		fetched = true
		return nil, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fetched {
		t.Fatal("launch-scoped list should refetch after post mutation")
	}

	fetched = false
	if _, err := Read(context.Background(), s, KeyPosts, time.Minute, func(ctx context.Context) ([]post, error) {
		fetched = true
		return nil, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched {
		t.Fatal("global list should not be invalidated by the table")
	}
}

func TestListHelpers(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC) }
	less := func(a, b post) bool { return a.Date.Before(b.Date) }

	t.Run("insert keeps date order", func(t *testing.T) {
		items := []post{{ID: "a", Date: d(1)}, {ID: "c", Date: d(20)}}
		items = InsertSorted(items, post{ID: "b", Date: d(10)}, less)
		if items[0].ID != "a" || items[1].ID != "b" || items[2].ID != "c" {
			t.Fatalf("wrong order: %+v", items)
		}
	})

	t.Run("insert into empty list", func(t *testing.T) {
		items := InsertSorted(nil, post{ID: "a", Date: d(1)}, less)
		if len(items) != 1 || items[0].ID != "a" {
			t.Fatalf("unexpected result: %+v", items)
		}
	})

	t.Run("remove drops matches only", func(t *testing.T) {
		items := []post{{ID: "a"}, {ID: "b"}, {ID: "a"}}
		items = Remove(items, func(p post) bool { return p.ID == "a" })
		if len(items) != 1 || items[0].ID != "b" {
			t.Fatalf("unexpected result: %+v", items)
		}
	})
}

func TestApplySkipsStaleEntries(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(now)))

	s.Put("k", 1)
	s.Invalidate("k")
	Apply(s, "k", func(v int) int { return v + 100 })

	// The stale entry must not be resurrected by the rewrite.
	var fetched bool
	v, err := Read(context.Background(), s, "k", time.Minute, func(ctx context.Context) (int, error) {
		fetched = true
		return 7, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fetched || v != 7 {
		t.Fatalf("expected refetch of stale entry, got value=%d fetched=%v", v, fetched)
	}
}
