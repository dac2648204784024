package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/post/dao"
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	"github.com/vadim/contentdesk/internal/domain/post/service"
	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
)

// stubPostPolicy returns whatever list its field holds, including a nil
// slice, which is what repositories used to produce for zero rows.
type stubPostPolicy struct {
	posts []entity.Post
}

func (s *stubPostPolicy) CreatePost(ctx context.Context, in service.CreateInput) (*entity.Post, error) {
	return nil, entity.ErrNoProfiles
}

func (s *stubPostPolicy) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return nil, entity.ErrPostNotFound
}

func (s *stubPostPolicy) UpdatePost(ctx context.Context, in service.UpdateInput) (*entity.Post, error) {
	return nil, entity.ErrPostNotFound
}

func (s *stubPostPolicy) ChangeStatus(ctx context.Context, id string, next entity.Status) (*entity.Post, error) {
	return nil, entity.ErrPostNotFound
}

func (s *stubPostPolicy) DeletePost(ctx context.Context, id string) error {
	return entity.ErrPostNotFound
}

func (s *stubPostPolicy) ListPosts(ctx context.Context, filter dao.PostFilter, opts dao.ListOptions) ([]entity.Post, error) {
	return s.posts, nil
}

func (s *stubPostPolicy) ListByLaunch(ctx context.Context, launchID string) ([]entity.Post, error) {
	return s.posts, nil
}

func (s *stubPostPolicy) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error) {
	return s.posts, nil
}

func (s *stubPostPolicy) Calendar(ctx context.Context, year int, month time.Month) (map[string][]entity.Post, error) {
	return map[string][]entity.Post{}, nil
}

type stubProfileLister struct{}

func (stubProfileLister) ListProfiles(ctx context.Context, activeOnly bool) ([]profileent.Profile, error) {
	return nil, nil
}

func newPostRouter(posts []entity.Post) *chi.Mux {
	r := chi.NewRouter()
	NewPostHandler(&stubPostPolicy{posts: posts}, stubProfileLister{}).RegisterRoutes(r)
	return r
}

// A query matching nothing must serve "items": [], never "items": null.
func TestListServesEmptyItemsArray(t *testing.T) {
	router := newPostRouter(nil)

	urls := map[string]string{
		"unfiltered": "/posts",
		"launch":     "/posts?launch_id=l1",
		"range":      "/posts?from=2024-06-01T00:00:00Z&to=2024-06-30T00:00:00Z",
		"platform":   "/posts?platform=Instagram",
	}

	for name, url := range urls {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			body := rec.Body.String()
			if !strings.Contains(body, `"items":[]`) {
				t.Errorf("expected empty items array, got %s", body)
			}
			if strings.Contains(body, "null") {
				t.Errorf("expected no null in empty list response, got %s", body)
			}
		})
	}
}

func TestListPassesItemsThrough(t *testing.T) {
	router := newPostRouter([]entity.Post{
		{ID: "p1", ProfileIDs: []string{"pr1"}, Status: entity.StatusDraft},
	})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"p1"`) || !strings.Contains(body, `"total":1`) {
		t.Errorf("expected the post in the response, got %s", body)
	}
}
