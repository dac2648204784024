package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/mediakit/entity"
	"github.com/vadim/contentdesk/internal/domain/mediakit/service"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// maxUploadSize caps media kit uploads at 100 MB
const maxUploadSize = 100 << 20

// MediaKitPolicy defines the interface for media kit operations
type MediaKitPolicy interface {
	CreateResource(ctx context.Context, in service.CreateInput) (*entity.Resource, error)
	UploadResource(ctx context.Context, in service.UploadInput) (*entity.Resource, error)
	GetResource(ctx context.Context, id string) (*entity.Resource, error)
	UpdateResource(ctx context.Context, in service.UpdateInput) (*entity.Resource, error)
	DeleteResource(ctx context.Context, id string) error
	ListResources(ctx context.Context, category string) ([]entity.Resource, error)
}

// MediaKitHandler handles HTTP requests for media kit resources
type MediaKitHandler struct {
	policy MediaKitPolicy
}

// NewMediaKitHandler creates a new media kit handler
func NewMediaKitHandler(p MediaKitPolicy) *MediaKitHandler {
	return &MediaKitHandler{policy: p}
}

// RegisterRoutes registers media kit routes
func (h *MediaKitHandler) RegisterRoutes(r chi.Router) {
	r.Route("/mediakit", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Post("/upload", h.Upload())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
	})
}

// CreateResourceRequest represents the request body for registering a
// resource hosted elsewhere
type CreateResourceRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	URL         string   `json:"url" validate:"required,url"`
	Format      string   `json:"format"`
	FileSize    int64    `json:"file_size"`
	Tags        []string `json:"tags"`
	Active      bool     `json:"active"`
}

// Create handles POST /mediakit
func (h *MediaKitHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateResourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		res, err := h.policy.CreateResource(r.Context(), service.CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			URL:         req.URL,
			Format:      req.Format,
			FileSize:    req.FileSize,
			Tags:        req.Tags,
			Active:      req.Active,
		})
		if err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.Created(w, res)
	}
}

// Upload handles POST /mediakit/upload (multipart form: file + metadata)
func (h *MediaKitHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.BadRequest(w, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "file field is required")
			return
		}
		defer file.Close()

		name := r.FormValue("name")
		if name == "" {
			name = header.Filename
		}

		var tags []string
		if raw := r.FormValue("tags"); raw != "" {
			tags = strings.Split(raw, ",")
			for i := range tags {
				tags[i] = strings.TrimSpace(tags[i])
			}
		}

		res, err := h.policy.UploadResource(r.Context(), service.UploadInput{
			Name:        name,
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
			Tags:        tags,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.Created(w, res)
	}
}

// UpdateResourceRequest represents the request body for updating a resource
type UpdateResourceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Format      *string  `json:"format,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// Update handles PUT /mediakit/{id}
func (h *MediaKitHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateResourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		res, err := h.policy.UpdateResource(r.Context(), service.UpdateInput{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			URL:         req.URL,
			Format:      req.Format,
			Tags:        req.Tags,
			Active:      req.Active,
		})
		if err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.OK(w, res)
	}
}

// Get handles GET /mediakit/{id}
func (h *MediaKitHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.policy.GetResource(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.OK(w, res)
	}
}

// Delete handles DELETE /mediakit/{id}
func (h *MediaKitHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeleteResource(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ResourceListResponse represents the response for listing resources
type ResourceListResponse struct {
	Items []entity.Resource `json:"items"`
	Total int               `json:"total"`
}

// List handles GET /mediakit
func (h *MediaKitHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := h.policy.ListResources(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			handleMediaKitError(w, err)
			return
		}

		response.OK(w, ResourceListResponse{Items: items(resources), Total: len(resources)})
	}
}

func handleMediaKitError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrResourceNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyName, entity.ErrEmptyURL, entity.ErrEmptyUpload:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
