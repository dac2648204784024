package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/protocol/entity"
	"github.com/vadim/contentdesk/internal/domain/protocol/service"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// ProtocolPolicy defines the interface for protocol operations
type ProtocolPolicy interface {
	CreateProtocol(ctx context.Context, in service.CreateInput) (*entity.Protocol, error)
	GetProtocol(ctx context.Context, id string) (*entity.Protocol, error)
	UpdateProtocol(ctx context.Context, in service.UpdateInput) (*entity.Protocol, error)
	DeleteProtocol(ctx context.Context, id string) error
	ListProtocols(ctx context.Context, activeOnly bool) ([]entity.Protocol, error)
}

// ProtocolHandler handles HTTP requests for protocols
type ProtocolHandler struct {
	policy ProtocolPolicy
}

// NewProtocolHandler creates a new protocol handler
func NewProtocolHandler(p ProtocolPolicy) *ProtocolHandler {
	return &ProtocolHandler{policy: p}
}

// RegisterRoutes registers protocol routes
func (h *ProtocolHandler) RegisterRoutes(r chi.Router) {
	r.Route("/protocols", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
	})
}

// CreateProtocolRequest represents the request body for creating a protocol
type CreateProtocolRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Active      bool   `json:"active"`
}

// Create handles POST /protocols
func (h *ProtocolHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProtocolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		proto, err := h.policy.CreateProtocol(r.Context(), service.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Type:        entity.ProtocolType(req.Type),
			Content:     req.Content,
			Active:      req.Active,
		})
		if err != nil {
			handleProtocolError(w, err)
			return
		}

		response.Created(w, proto)
	}
}

// UpdateProtocolRequest represents the request body for updating a protocol
type UpdateProtocolRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Content     *string `json:"content,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Update handles PUT /protocols/{id}
func (h *ProtocolHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateProtocolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in := service.UpdateInput{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Content:     req.Content,
			Active:      req.Active,
		}
		if req.Type != nil {
			t := entity.ProtocolType(*req.Type)
			in.Type = &t
		}

		proto, err := h.policy.UpdateProtocol(r.Context(), in)
		if err != nil {
			handleProtocolError(w, err)
			return
		}

		response.OK(w, proto)
	}
}

// Get handles GET /protocols/{id}
func (h *ProtocolHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proto, err := h.policy.GetProtocol(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleProtocolError(w, err)
			return
		}

		response.OK(w, proto)
	}
}

// Delete handles DELETE /protocols/{id}
func (h *ProtocolHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeleteProtocol(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleProtocolError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ProtocolListResponse represents the response for listing protocols
type ProtocolListResponse struct {
	Items []entity.Protocol `json:"items"`
	Total int               `json:"total"`
}

// List handles GET /protocols
func (h *ProtocolHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"

		protocols, err := h.policy.ListProtocols(r.Context(), activeOnly)
		if err != nil {
			handleProtocolError(w, err)
			return
		}

		response.OK(w, ProtocolListResponse{Items: items(protocols), Total: len(protocols)})
	}
}

func handleProtocolError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrProtocolNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyTitle:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
