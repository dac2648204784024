package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/contentdesk/internal/domain/post/compose"
	"github.com/vadim/contentdesk/internal/domain/post/dao"
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	"github.com/vadim/contentdesk/internal/domain/post/service"
	"github.com/vadim/contentdesk/internal/domain/post/view"
	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
	"github.com/vadim/contentdesk/internal/httpx/response"
)

// PostPolicy defines the interface for post operations
type PostPolicy interface {
	CreatePost(ctx context.Context, in service.CreateInput) (*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	UpdatePost(ctx context.Context, in service.UpdateInput) (*entity.Post, error)
	ChangeStatus(ctx context.Context, id string, next entity.Status) (*entity.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, filter dao.PostFilter, opts dao.ListOptions) ([]entity.Post, error)
	ListByLaunch(ctx context.Context, launchID string) ([]entity.Post, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Post, error)
	Calendar(ctx context.Context, year int, month time.Month) (map[string][]entity.Post, error)
}

// ProfileLister resolves the profiles posts are targeted at. Needed for the
// platform filter dimension and the compose preview, where the platform of
// each profile matters.
type ProfileLister interface {
	ListProfiles(ctx context.Context, activeOnly bool) ([]profileent.Profile, error)
}

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	policy   PostPolicy
	profiles ProfileLister
}

// NewPostHandler creates a new post handler
func NewPostHandler(p PostPolicy, profiles ProfileLister) *PostHandler {
	return &PostHandler{policy: p, profiles: profiles}
}

// RegisterRoutes registers post routes
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Post("/compose", h.Compose())
		r.Get("/calendar", h.Calendar())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
		r.Post("/{id}/status", h.ChangeStatus())
	})
}

// CopyRequest represents one per-target copy in requests
type CopyRequest struct {
	Platform  string   `json:"platform"`
	Content   string   `json:"content"`
	Hashtags  []string `json:"hashtags"`
	ProfileID string   `json:"profile_id,omitempty"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	ProductID   *string       `json:"product_id,omitempty"`
	PostAt      string        `json:"post_at" validate:"required"`
	ProfileIDs  []string      `json:"profile_ids" validate:"required,min=1"`
	ContentType string        `json:"content_type" validate:"required"`
	Format      string        `json:"format"`
	Copies      []CopyRequest `json:"copies"`
	Hashtags    []string      `json:"hashtags"`
	MediaIDs    []string      `json:"media_ids"`
	LaunchID    *string       `json:"launch_id,omitempty"`
}

// Create handles POST /posts
func (h *PostHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		postAt, err := time.Parse(time.RFC3339, req.PostAt)
		if err != nil {
			response.BadRequest(w, "invalid post_at format, use RFC3339")
			return
		}

		post, err := h.policy.CreatePost(r.Context(), service.CreateInput{
			ProductID:   req.ProductID,
			PostAt:      postAt,
			ProfileIDs:  req.ProfileIDs,
			ContentType: entity.ContentType(req.ContentType),
			Format:      entity.Format(req.Format),
			Copies:      toCopies(req.Copies),
			Hashtags:    req.Hashtags,
			MediaIDs:    req.MediaIDs,
			LaunchID:    req.LaunchID,
		})
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.Created(w, post)
	}
}

// UpdatePostRequest represents the request body for updating a post
type UpdatePostRequest struct {
	ProductID   *string       `json:"product_id,omitempty"`
	PostAt      *string       `json:"post_at,omitempty"`
	ProfileIDs  []string      `json:"profile_ids,omitempty"`
	ContentType *string       `json:"content_type,omitempty"`
	Format      *string       `json:"format,omitempty"`
	Copies      []CopyRequest `json:"copies,omitempty"`
	Hashtags    []string      `json:"hashtags,omitempty"`
	MediaIDs    []string      `json:"media_ids,omitempty"`
	LaunchID    *string       `json:"launch_id,omitempty"`
	ClearLaunch bool          `json:"clear_launch,omitempty"`
}

// Update handles PUT /posts/{id}
func (h *PostHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in := service.UpdateInput{
			ID:          id,
			ProductID:   req.ProductID,
			ProfileIDs:  req.ProfileIDs,
			Hashtags:    req.Hashtags,
			MediaIDs:    req.MediaIDs,
			LaunchID:    req.LaunchID,
			ClearLaunch: req.ClearLaunch,
		}

		if req.PostAt != nil {
			postAt, err := time.Parse(time.RFC3339, *req.PostAt)
			if err != nil {
				response.BadRequest(w, "invalid post_at format, use RFC3339")
				return
			}
			in.PostAt = &postAt
		}
		if req.ContentType != nil {
			ct := entity.ContentType(*req.ContentType)
			in.ContentType = &ct
		}
		if req.Format != nil {
			f := entity.Format(*req.Format)
			in.Format = &f
		}
		if req.Copies != nil {
			in.Copies = toCopies(req.Copies)
		}

		post, err := h.policy.UpdatePost(r.Context(), in)
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.policy.GetPost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
			handlePostError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ChangeStatusRequest represents the request body for a status transition
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus handles POST /posts/{id}/status
func (h *PostHandler) ChangeStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		post, err := h.policy.ChangeStatus(r.Context(), chi.URLParam(r, "id"), entity.Status(req.Status))
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// PostListResponse represents the response for listing posts
type PostListResponse struct {
	Items []entity.Post `json:"items"`
	Total int           `json:"total"`
}

// List handles GET /posts. Supports profile_id, launch_id, product_id,
// status, content_type filters plus an inclusive from/to date range.
func (h *PostHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		from, to := q.Get("from"), q.Get("to")
		if from != "" || to != "" {
			if from == "" || to == "" {
				response.BadRequest(w, "from and to must be given together")
				return
			}
			fromT, err := time.Parse(time.RFC3339, from)
			if err != nil {
				response.BadRequest(w, "invalid from format, use RFC3339")
				return
			}
			toT, err := time.Parse(time.RFC3339, to)
			if err != nil {
				response.BadRequest(w, "invalid to format, use RFC3339")
				return
			}

			posts, err := h.policy.ListByDateRange(r.Context(), fromT, toT)
			if err != nil {
				handlePostError(w, err)
				return
			}
			response.OK(w, PostListResponse{Items: items(posts), Total: len(posts)})
			return
		}

		// The platform of a post lives on its profiles, not the row, so the
		// platform dimension filters the cached list instead of the query.
		if platform := q.Get("platform"); platform != "" {
			posts, err := h.policy.ListPosts(r.Context(), dao.PostFilter{}, dao.ListOptions{})
			if err != nil {
				handlePostError(w, err)
				return
			}

			platforms, err := h.profilePlatforms(r.Context())
			if err != nil {
				handlePostError(w, err)
				return
			}

			f := view.Filter{
				ProfileID:   q.Get("profile_id"),
				Status:      entity.Status(q.Get("status")),
				ContentType: entity.ContentType(q.Get("content_type")),
				Platform:    profileent.Platform(platform),
			}
			posts = f.Apply(posts, platforms)
			response.OK(w, PostListResponse{Items: items(posts), Total: len(posts)})
			return
		}

		if launchID := q.Get("launch_id"); launchID != "" && len(q) == 1 {
			posts, err := h.policy.ListByLaunch(r.Context(), launchID)
			if err != nil {
				handlePostError(w, err)
				return
			}
			response.OK(w, PostListResponse{Items: items(posts), Total: len(posts)})
			return
		}

		filter := dao.PostFilter{
			ProfileID: q.Get("profile_id"),
			LaunchID:  q.Get("launch_id"),
			ProductID: q.Get("product_id"),
		}
		if s := q.Get("status"); s != "" {
			st := entity.Status(s)
			filter.Status = &st
		}
		if ct := q.Get("content_type"); ct != "" {
			c := entity.ContentType(ct)
			filter.ContentType = &c
		}

		var opts dao.ListOptions
		if l := q.Get("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				response.BadRequest(w, "invalid limit")
				return
			}
			opts.Limit = n
		}
		if o := q.Get("offset"); o != "" {
			n, err := strconv.Atoi(o)
			if err != nil || n < 0 {
				response.BadRequest(w, "invalid offset")
				return
			}
			opts.Offset = n
		}

		posts, err := h.policy.ListPosts(r.Context(), filter, opts)
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, PostListResponse{Items: items(posts), Total: len(posts)})
	}
}

// ComposeRequest represents the request body for a compose preview
type ComposeRequest struct {
	ProfileIDs []string      `json:"profile_ids" validate:"required,min=1"`
	Copies     []CopyRequest `json:"copies"`
	CopyFrom   string        `json:"copy_from,omitempty"`
}

// ComposeGroup is one platform tab of the compose preview
type ComposeGroup struct {
	Platform   string   `json:"platform"`
	ProfileIDs []string `json:"profile_ids"`
}

// ComposeResponse represents the compose preview: platform groups and the
// per-profile copies the selection would be saved with
type ComposeResponse struct {
	Groups  []ComposeGroup        `json:"groups"`
	Copies  []entity.PlatformCopy `json:"copies"`
	Dropped []string              `json:"dropped,omitempty"`
}

// Compose handles POST /posts/compose. It previews the multi-profile copy
// state: existing copies are distributed over the selected profiles, an
// optional copy_from broadcasts one profile's copy across its platform, and
// the result comes back grouped by platform.
func (h *PostHandler) Compose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ComposeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		profiles, err := h.profiles.ListProfiles(r.Context(), false)
		if err != nil {
			handlePostError(w, err)
			return
		}
		refs := make([]compose.ProfileRef, len(profiles))
		for i, p := range profiles {
			refs[i] = compose.ProfileRef{ID: p.ID, Platform: p.Platform}
		}

		c := compose.New(refs)
		c.SetSelection(req.ProfileIDs)
		c.Import(toCopies(req.Copies))
		if req.CopyFrom != "" {
			c.CopyToPlatform(req.CopyFrom)
		}
		if err := c.Validate(); err != nil {
			handlePostError(w, err)
			return
		}

		groups := make([]ComposeGroup, 0, 4)
		for _, g := range c.PlatformGroups() {
			ids := make([]string, len(g.Profiles))
			for i, ref := range g.Profiles {
				ids[i] = ref.ID
			}
			groups = append(groups, ComposeGroup{Platform: string(g.Platform), ProfileIDs: ids})
		}

		copies, dropped := c.Export()
		response.OK(w, ComposeResponse{Groups: groups, Copies: copies, Dropped: dropped})
	}
}

func (h *PostHandler) profilePlatforms(ctx context.Context) (map[string]profileent.Platform, error) {
	profiles, err := h.profiles.ListProfiles(ctx, false)
	if err != nil {
		return nil, err
	}
	platforms := make(map[string]profileent.Platform, len(profiles))
	for _, p := range profiles {
		platforms[p.ID] = p.Platform
	}
	return platforms, nil
}

// CalendarResponse represents the day-bucketed month view
type CalendarResponse struct {
	Year  int                      `json:"year"`
	Month int                      `json:"month"`
	Days  map[string][]entity.Post `json:"days"`
}

// Calendar handles GET /posts/calendar?year=&month=
func (h *PostHandler) Calendar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		year, err := strconv.Atoi(q.Get("year"))
		if err != nil || year < 1970 {
			response.BadRequest(w, "invalid year")
			return
		}
		month, err := strconv.Atoi(q.Get("month"))
		if err != nil || month < 1 || month > 12 {
			response.BadRequest(w, "invalid month")
			return
		}

		days, err := h.policy.Calendar(r.Context(), year, time.Month(month))
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, CalendarResponse{Year: year, Month: month, Days: days})
	}
}

func toCopies(in []CopyRequest) []entity.PlatformCopy {
	if in == nil {
		return nil
	}
	copies := make([]entity.PlatformCopy, len(in))
	for i, c := range in {
		copies[i] = entity.PlatformCopy{
			Platform:  c.Platform,
			Content:   c.Content,
			Hashtags:  c.Hashtags,
			ProfileID: c.ProfileID,
		}
	}
	return copies
}

func handlePostError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrPostNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrStatusTransition:
		response.Conflict(w, err.Error())
	case entity.ErrNoProfiles, entity.ErrProfileFieldDiverged, entity.ErrInvalidContentType,
		entity.ErrInvalidStatus, entity.ErrCopyUnknownProfile, entity.ErrInvalidDateRange:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
