package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vadim/contentdesk/internal/domain/profile/entity"
	"github.com/vadim/contentdesk/internal/domain/profile/policy"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// validate checks request DTO struct tags before any policy call
var validate = validator.New()

// items keeps list responses serializing as [] rather than null when a
// query matches nothing
func items[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// ProfilePolicy defines the interface for profile operations
// Interface is defined by consumer (handler), not provider (policy)
type ProfilePolicy interface {
	CreateProfile(ctx context.Context, in policy.CreateProfileInput) (*entity.Profile, error)
	GetProfile(ctx context.Context, id string) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, in policy.UpdateProfileInput) (*entity.Profile, error)
	SetActive(ctx context.Context, id string, active bool) (*entity.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	ListProfiles(ctx context.Context, activeOnly bool) ([]entity.Profile, error)
	FetchMetrics(ctx context.Context, profileID string) (*policy.MetricsSample, error)
}

// ProfileHandler handles HTTP requests for profiles
type ProfileHandler struct {
	policy ProfilePolicy
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(p ProfilePolicy) *ProfileHandler {
	return &ProfileHandler{policy: p}
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
		r.Post("/{id}/active", h.SetActive())
		r.Get("/{id}/metrics", h.Metrics())
	})
}

// CreateProfileRequest represents the request body for creating a profile
type CreateProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Handle   string `json:"handle" validate:"required"`
	Platform string `json:"platform" validate:"required"`
	Active   bool   `json:"active"`
	Notes    string `json:"notes"`
}

// Create handles POST /profiles
func (h *ProfileHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		prof, err := h.policy.CreateProfile(r.Context(), policy.CreateProfileInput{
			Name:     req.Name,
			Handle:   req.Handle,
			Platform: entity.Platform(req.Platform),
			Active:   req.Active,
			Notes:    req.Notes,
		})
		if err != nil {
			handleProfileError(w, err)
			return
		}

		response.Created(w, prof)
	}
}

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Handle   *string `json:"handle,omitempty"`
	Platform *string `json:"platform,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Update handles PUT /profiles/{id}
func (h *ProfileHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		var platform *entity.Platform
		if req.Platform != nil {
			p := entity.Platform(*req.Platform)
			platform = &p
		}

		prof, err := h.policy.UpdateProfile(r.Context(), policy.UpdateProfileInput{
			ID:       id,
			Name:     req.Name,
			Handle:   req.Handle,
			Platform: platform,
			Active:   req.Active,
			Notes:    req.Notes,
		})
		if err != nil {
			handleProfileError(w, err)
			return
		}

		response.OK(w, prof)
	}
}

// Get handles GET /profiles/{id}
func (h *ProfileHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, err := h.policy.GetProfile(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleProfileError(w, err)
			return
		}

		response.OK(w, prof)
	}
}

// Delete handles DELETE /profiles/{id}
func (h *ProfileHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleProfileError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// SetActiveRequest represents the request body for toggling the active flag
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles POST /profiles/{id}/active
func (h *ProfileHandler) SetActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		prof, err := h.policy.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active)
		if err != nil {
			handleProfileError(w, err)
			return
		}

		response.OK(w, prof)
	}
}

// ProfileListResponse represents the response for listing profiles
type ProfileListResponse struct {
	Items []entity.Profile `json:"items"`
	Total int              `json:"total"`
}

// List handles GET /profiles
func (h *ProfileHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"

		profiles, err := h.policy.ListProfiles(r.Context(), activeOnly)
		if err != nil {
			handleProfileError(w, err)
			return
		}

		response.OK(w, ProfileListResponse{Items: items(profiles), Total: len(profiles)})
	}
}

// Metrics handles GET /profiles/{id}/metrics
func (h *ProfileHandler) Metrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample, err := h.policy.FetchMetrics(r.Context(), chi.URLParam(r, "id"))
		if err == entity.ErrProfileNotFound {
			response.NotFound(w, err.Error())
			return
		}
		if err != nil {
			// Anything else is the upstream platform failing.
			response.BadGateway(w, err.Error())
			return
		}

		response.OK(w, sample)
	}
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrProfileNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyName, entity.ErrEmptyHandle, entity.ErrEmptyPlatform:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
