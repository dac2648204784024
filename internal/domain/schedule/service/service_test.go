package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vadim/contentdesk/internal/domain/schedule/entity"
)

type memRepo struct {
	posts map[string]*entity.ScheduledPost
}

func newMemRepo() *memRepo {
	return &memRepo{posts: make(map[string]*entity.ScheduledPost)}
}

func (r *memRepo) Create(_ context.Context, p *entity.ScheduledPost) error {
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.ScheduledPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *memRepo) List(_ context.Context, profileID string, status entity.DispatchStatus) ([]entity.ScheduledPost, error) {
	var out []entity.ScheduledPost
	for _, p := range r.posts {
		if profileID != "" && p.ProfileID != profileID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memRepo) ListDue(_ context.Context, now time.Time, limit int) ([]entity.ScheduledPost, error) {
	var out []entity.ScheduledPost
	for _, p := range r.posts {
		if p.Status == entity.DispatchStatusPending && !p.ScheduledFor.After(now) {
			out = append(out, *p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memRepo) MarkSent(_ context.Context, id, externalID string) error {
	p := r.posts[id]
	p.Status = entity.DispatchStatusSent
	p.ExternalID = externalID
	p.ErrorMessage = ""
	return nil
}

func (r *memRepo) MarkFailed(_ context.Context, id, errorMessage string) error {
	p := r.posts[id]
	p.Status = entity.DispatchStatusFailed
	p.ErrorMessage = errorMessage
	return nil
}

type staticDirectory map[string][2]string

func (d staticDirectory) Resolve(_ context.Context, profileID string) (string, string, error) {
	ref, ok := d[profileID]
	if !ok {
		return "", "", errors.New("unknown profile")
	}
	return ref[0], ref[1], nil
}

type fakePublisher struct {
	calls    int
	failFor  string
	lastText string
}

func (f *fakePublisher) Publish(_ context.Context, _, handle string, content entity.Content, _ time.Time) (string, error) {
	f.calls++
	f.lastText = content.Text
	if handle == f.failFor {
		return "", errors.New("platform rejected the post")
	}
	return "ext-123", nil
}

func newService(t *testing.T) (*Service, *memRepo, *fakePublisher) {
	t.Helper()
	repo := newMemRepo()
	pub := &fakePublisher{}
	dir := staticDirectory{
		"p1": {"Instagram", "@brand"},
		"p2": {"TikTok", "@brand.tt"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, dir, pub, 10, logger), repo, pub
}

func TestCreateRejectsUnknownProfile(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		ProfileID:    "ghost",
		Content:      entity.Content{Text: "hi"},
		ScheduledFor: time.Now().Add(time.Hour),
	})
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestDispatchMarksSent(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newService(t)

	created, err := svc.Create(ctx, CreateInput{
		ProfileID:    "p1",
		Content:      entity.Content{Text: "launch day", Hashtags: []string{"#go"}},
		ScheduledFor: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sent, err := svc.Dispatch(ctx, created.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if sent.Status != entity.DispatchStatusSent || sent.ExternalID != "ext-123" {
		t.Fatalf("sent = %+v", sent)
	}
	if pub.lastText != "launch day" {
		t.Fatalf("publisher got %q", pub.lastText)
	}
	if repo.posts[created.ID].Status != entity.DispatchStatusSent {
		t.Fatal("row not marked sent")
	}

	if _, err := svc.Dispatch(ctx, created.ID); err != entity.ErrAlreadyDispatched {
		t.Fatalf("got %v, want ErrAlreadyDispatched", err)
	}
}

func TestDispatchFailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newService(t)
	pub.failFor = "@brand"

	created, err := svc.Create(ctx, CreateInput{
		ProfileID:    "p1",
		Content:      entity.Content{Text: "doomed"},
		ScheduledFor: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Dispatch(ctx, created.ID); err == nil {
		t.Fatal("expected dispatch error")
	}

	row := repo.posts[created.ID]
	if row.Status != entity.DispatchStatusFailed || row.ErrorMessage == "" {
		t.Fatalf("row = %+v", row)
	}

	// A failed post stays retryable.
	pub.failFor = ""
	if _, err := svc.Dispatch(ctx, created.ID); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if repo.posts[created.ID].Status != entity.DispatchStatusSent {
		t.Fatal("retry did not mark sent")
	}
}

func TestProcessDuePosts(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newService(t)
	pub.failFor = "@brand.tt"

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	due, err := svc.Create(ctx, CreateInput{ProfileID: "p1", Content: entity.Content{Text: "due"}, ScheduledFor: past})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	failing, err := svc.Create(ctx, CreateInput{ProfileID: "p2", Content: entity.Content{Text: "also due"}, ScheduledFor: past})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	later, err := svc.Create(ctx, CreateInput{ProfileID: "p1", Content: entity.Content{Text: "later"}, ScheduledFor: future})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.ProcessDuePosts(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	if got := repo.posts[due.ID].Status; got != entity.DispatchStatusSent {
		t.Fatalf("due post = %s", got)
	}
	// The failing post must not stop the batch, and must be marked failed.
	if got := repo.posts[failing.ID].Status; got != entity.DispatchStatusFailed {
		t.Fatalf("failing post = %s", got)
	}
	if got := repo.posts[later.ID].Status; got != entity.DispatchStatusPending {
		t.Fatalf("future post = %s", got)
	}
	if pub.calls != 2 {
		t.Fatalf("publisher called %d times, want 2", pub.calls)
	}
}
