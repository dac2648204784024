package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/product/entity"
	"github.com/vadim/contentdesk/internal/domain/product/service"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// ProductPolicy defines the interface for product operations
type ProductPolicy interface {
	CreateProduct(ctx context.Context, in service.CreateInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	UpdateProduct(ctx context.Context, in service.UpdateInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	policy ProductPolicy
}

// NewProductHandler creates a new product handler
func NewProductHandler(p ProductPolicy) *ProductHandler {
	return &ProductHandler{policy: p}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
	})
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	CreativeConcept string   `json:"creative_concept"`
	LandingURL      string   `json:"landing_url" validate:"omitempty,url"`
	CommKitURL      string   `json:"comm_kit_url" validate:"omitempty,url"`
	Countries       []string `json:"countries"`
	Hashtags        []string `json:"hashtags"`
	SalesObjectives []string `json:"sales_objectives"`
	Briefing        string   `json:"briefing"`
}

// Create handles POST /products
func (h *ProductHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		prod, err := h.policy.CreateProduct(r.Context(), service.CreateInput{
			Name:            req.Name,
			Description:     req.Description,
			CreativeConcept: req.CreativeConcept,
			LandingURL:      req.LandingURL,
			CommKitURL:      req.CommKitURL,
			Countries:       req.Countries,
			Hashtags:        req.Hashtags,
			SalesObjectives: req.SalesObjectives,
			Briefing:        req.Briefing,
		})
		if err != nil {
			handleProductError(w, err)
			return
		}

		response.Created(w, prod)
	}
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	CreativeConcept *string  `json:"creative_concept,omitempty"`
	LandingURL      *string  `json:"landing_url,omitempty"`
	CommKitURL      *string  `json:"comm_kit_url,omitempty"`
	Countries       []string `json:"countries,omitempty"`
	Hashtags        []string `json:"hashtags,omitempty"`
	SalesObjectives []string `json:"sales_objectives,omitempty"`
	Briefing        *string  `json:"briefing,omitempty"`
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		prod, err := h.policy.UpdateProduct(r.Context(), service.UpdateInput{
			ID:              id,
			Name:            req.Name,
			Description:     req.Description,
			CreativeConcept: req.CreativeConcept,
			LandingURL:      req.LandingURL,
			CommKitURL:      req.CommKitURL,
			Countries:       req.Countries,
			Hashtags:        req.Hashtags,
			SalesObjectives: req.SalesObjectives,
			Briefing:        req.Briefing,
		})
		if err != nil {
			handleProductError(w, err)
			return
		}

		response.OK(w, prod)
	}
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prod, err := h.policy.GetProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleProductError(w, err)
			return
		}

		response.OK(w, prod)
	}
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleProductError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Items []entity.Product `json:"items"`
	Total int              `json:"total"`
}

// List handles GET /products
func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.policy.ListProducts(r.Context())
		if err != nil {
			handleProductError(w, err)
			return
		}

		response.OK(w, ProductListResponse{Items: items(products), Total: len(products)})
	}
}

func handleProductError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrProductNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyName:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
