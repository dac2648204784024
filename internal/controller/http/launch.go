package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/launch/dao"
	"github.com/vadim/contentdesk/internal/domain/launch/entity"
	"github.com/vadim/contentdesk/internal/domain/launch/service"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// LaunchPolicy defines the interface for launch operations
type LaunchPolicy interface {
	CreateLaunch(ctx context.Context, in service.CreateInput) (*entity.Launch, error)
	GetLaunch(ctx context.Context, id string) (*entity.Launch, error)
	UpdateLaunch(ctx context.Context, in service.UpdateInput) (*entity.Launch, error)
	DeleteLaunch(ctx context.Context, id string) error
	ListLaunches(ctx context.Context, filter dao.LaunchFilter) ([]entity.Launch, error)
	CreatePhase(ctx context.Context, in service.CreatePhaseInput) (*entity.Phase, error)
	UpdatePhase(ctx context.Context, in service.UpdatePhaseInput) (*entity.Phase, error)
	DeletePhase(ctx context.Context, id string) error
	ListPhases(ctx context.Context, launchID string) ([]entity.Phase, error)
}

// LaunchHandler handles HTTP requests for launches and their phases
type LaunchHandler struct {
	policy LaunchPolicy
}

// NewLaunchHandler creates a new launch handler
func NewLaunchHandler(p LaunchPolicy) *LaunchHandler {
	return &LaunchHandler{policy: p}
}

// RegisterRoutes registers launch routes
func (h *LaunchHandler) RegisterRoutes(r chi.Router) {
	r.Route("/launches", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
		r.Post("/{id}/phases", h.CreatePhase())
		r.Get("/{id}/phases", h.ListPhases())
	})
	r.Route("/phases", func(r chi.Router) {
		r.Put("/{id}", h.UpdatePhase())
		r.Delete("/{id}", h.DeletePhase())
	})
}

// CreateLaunchRequest represents the request body for creating a launch
type CreateLaunchRequest struct {
	Name        string  `json:"name" validate:"required"`
	ProductID   *string `json:"product_id,omitempty"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	Responsible string  `json:"responsible"`
	Description string  `json:"description"`
}

// Create handles POST /launches
func (h *LaunchHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateLaunchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			response.BadRequest(w, "invalid start_date format, use RFC3339")
			return
		}
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			response.BadRequest(w, "invalid end_date format, use RFC3339")
			return
		}

		launch, err := h.policy.CreateLaunch(r.Context(), service.CreateInput{
			Name:        req.Name,
			ProductID:   req.ProductID,
			Category:    entity.Category(req.Category),
			Status:      entity.LaunchStatus(req.Status),
			StartDate:   start,
			EndDate:     end,
			Responsible: req.Responsible,
			Description: req.Description,
		})
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.Created(w, launch)
	}
}

// UpdateLaunchRequest represents the request body for updating a launch
type UpdateLaunchRequest struct {
	Name        *string `json:"name,omitempty"`
	ProductID   *string `json:"product_id,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update handles PUT /launches/{id}
func (h *LaunchHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateLaunchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in := service.UpdateInput{
			ID:          id,
			Name:        req.Name,
			ProductID:   req.ProductID,
			Responsible: req.Responsible,
			Description: req.Description,
		}
		if req.Category != nil {
			c := entity.Category(*req.Category)
			in.Category = &c
		}
		if req.Status != nil {
			s := entity.LaunchStatus(*req.Status)
			in.Status = &s
		}
		if req.StartDate != nil {
			t, err := time.Parse(time.RFC3339, *req.StartDate)
			if err != nil {
				response.BadRequest(w, "invalid start_date format, use RFC3339")
				return
			}
			in.StartDate = &t
		}
		if req.EndDate != nil {
			t, err := time.Parse(time.RFC3339, *req.EndDate)
			if err != nil {
				response.BadRequest(w, "invalid end_date format, use RFC3339")
				return
			}
			in.EndDate = &t
		}

		launch, err := h.policy.UpdateLaunch(r.Context(), in)
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.OK(w, launch)
	}
}

// Get handles GET /launches/{id}
func (h *LaunchHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		launch, err := h.policy.GetLaunch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.OK(w, launch)
	}
}

// Delete handles DELETE /launches/{id}
func (h *LaunchHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeleteLaunch(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleLaunchError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// LaunchListResponse represents the response for listing launches
type LaunchListResponse struct {
	Items []entity.Launch `json:"items"`
	Total int             `json:"total"`
}

// List handles GET /launches
func (h *LaunchHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := dao.LaunchFilter{ProductID: q.Get("product_id")}
		if s := q.Get("status"); s != "" {
			st := entity.LaunchStatus(s)
			filter.Status = &st
		}
		if c := q.Get("category"); c != "" {
			ct := entity.Category(c)
			filter.Category = &ct
		}

		launches, err := h.policy.ListLaunches(r.Context(), filter)
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.OK(w, LaunchListResponse{Items: items(launches), Total: len(launches)})
	}
}

// CreatePhaseRequest represents the request body for creating a phase
type CreatePhaseRequest struct {
	Name        string `json:"name" validate:"required"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Responsible string `json:"responsible"`
	Notes       string `json:"notes"`
}

// CreatePhase handles POST /launches/{id}/phases
func (h *LaunchHandler) CreatePhase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		launchID := chi.URLParam(r, "id")

		var req CreatePhaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			response.BadRequest(w, "invalid start_date format, use RFC3339")
			return
		}
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			response.BadRequest(w, "invalid end_date format, use RFC3339")
			return
		}

		phase, err := h.policy.CreatePhase(r.Context(), service.CreatePhaseInput{
			LaunchID:    launchID,
			Name:        req.Name,
			Status:      entity.PhaseStatus(req.Status),
			StartDate:   start,
			EndDate:     end,
			Responsible: req.Responsible,
			Notes:       req.Notes,
		})
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.Created(w, phase)
	}
}

// UpdatePhaseRequest represents the request body for updating a phase
type UpdatePhaseRequest struct {
	Name        *string `json:"name,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdatePhase handles PUT /phases/{id}
func (h *LaunchHandler) UpdatePhase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdatePhaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in := service.UpdatePhaseInput{
			ID:          id,
			Name:        req.Name,
			Responsible: req.Responsible,
			Notes:       req.Notes,
		}
		if req.Status != nil {
			s := entity.PhaseStatus(*req.Status)
			in.Status = &s
		}
		if req.StartDate != nil {
			t, err := time.Parse(time.RFC3339, *req.StartDate)
			if err != nil {
				response.BadRequest(w, "invalid start_date format, use RFC3339")
				return
			}
			in.StartDate = &t
		}
		if req.EndDate != nil {
			t, err := time.Parse(time.RFC3339, *req.EndDate)
			if err != nil {
				response.BadRequest(w, "invalid end_date format, use RFC3339")
				return
			}
			in.EndDate = &t
		}

		phase, err := h.policy.UpdatePhase(r.Context(), in)
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.OK(w, phase)
	}
}

// DeletePhase handles DELETE /phases/{id}
func (h *LaunchHandler) DeletePhase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeletePhase(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleLaunchError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// PhaseListResponse represents the response for listing phases
type PhaseListResponse struct {
	Items []entity.Phase `json:"items"`
	Total int            `json:"total"`
}

// ListPhases handles GET /launches/{id}/phases
func (h *LaunchHandler) ListPhases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phases, err := h.policy.ListPhases(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		response.OK(w, PhaseListResponse{Items: items(phases), Total: len(phases)})
	}
}

func handleLaunchError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrLaunchNotFound, entity.ErrPhaseNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyName, entity.ErrInvalidDates, entity.ErrPhaseWithoutLaunch:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
