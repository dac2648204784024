package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
	"github.com/vadim/contentdesk/internal/domain/schedule/entity"
	"github.com/vadim/contentdesk/internal/domain/schedule/service"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// SchedulePolicy defines the interface for scheduled post operations
type SchedulePolicy interface {
	Create(ctx context.Context, in service.CreateInput) (*entity.ScheduledPost, error)
	GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, profileID string, status entity.DispatchStatus) ([]entity.ScheduledPost, error)
	Dispatch(ctx context.Context, id string) (*entity.ScheduledPost, error)
}

// ScheduleHandler handles HTTP requests for scheduled posts
type ScheduleHandler struct {
	policy SchedulePolicy
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(p SchedulePolicy) *ScheduleHandler {
	return &ScheduleHandler{policy: p}
}

// RegisterRoutes registers scheduled post routes
func (h *ScheduleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/scheduled-posts", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Delete("/{id}", h.Delete())
		r.Post("/{id}/dispatch", h.Dispatch())
	})
}

// CreateScheduledPostRequest represents the request body for scheduling a post
type CreateScheduledPostRequest struct {
	ProfileID    string   `json:"profile_id" validate:"required"`
	Text         string   `json:"text"`
	Hashtags     []string `json:"hashtags"`
	MediaURLs    []string `json:"media_urls" validate:"omitempty,dive,url"`
	ScheduledFor string   `json:"scheduled_for" validate:"required"`
}

// Create handles POST /scheduled-posts
func (h *ScheduleHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateScheduledPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
		if err != nil {
			response.BadRequest(w, "invalid scheduled_for format, use RFC3339")
			return
		}

		post, err := h.policy.Create(r.Context(), service.CreateInput{
			ProfileID: req.ProfileID,
			Content: entity.Content{
				Text:      req.Text,
				Hashtags:  req.Hashtags,
				MediaURLs: req.MediaURLs,
			},
			ScheduledFor: scheduledFor,
		})
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		response.Created(w, post)
	}
}

// Get handles GET /scheduled-posts/{id}
func (h *ScheduleHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.policy.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Delete handles DELETE /scheduled-posts/{id}
func (h *ScheduleHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleScheduleError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ScheduledPostListResponse represents the response for listing scheduled posts
type ScheduledPostListResponse struct {
	Items []entity.ScheduledPost `json:"items"`
	Total int                    `json:"total"`
}

// List handles GET /scheduled-posts
func (h *ScheduleHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		posts, err := h.policy.List(r.Context(), q.Get("profile_id"), entity.DispatchStatus(q.Get("status")))
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		response.OK(w, ScheduledPostListResponse{Items: items(posts), Total: len(posts)})
	}
}

// Dispatch handles POST /scheduled-posts/{id}/dispatch
func (h *ScheduleHandler) Dispatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.policy.Dispatch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		response.OK(w, post)
	}
}

func handleScheduleError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrScheduledPostNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrAlreadyDispatched:
		response.Conflict(w, err.Error())
	case entity.ErrNoProfile, entity.ErrEmptyContent, entity.ErrNoSchedule:
		response.BadRequest(w, err.Error())
	case profileent.ErrProfileNotFound:
		// Scheduling against a profile that does not exist.
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
