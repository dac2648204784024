package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/domain/profile/entity"
	"github.com/vadim/contentdesk/internal/domain/profile/service"
)

// MetricsSample is the policy-side view of an upstream metrics snapshot
type MetricsSample struct {
	Platform       string    `json:"platform"`
	Handle         string    `json:"handle"`
	Followers      int64     `json:"followers"`
	GrowthRate     float64   `json:"growth_rate"`
	EngagementRate float64   `json:"engagement_rate"`
	Impressions    int64     `json:"impressions"`
	Reach          int64     `json:"reach"`
	CollectedAt    time.Time `json:"collected_at"`
	Synthetic      bool      `json:"synthetic"`
}

// MetricsFetcher defines the interface for fetching upstream account metrics.
// Defined here (consumer), implemented by the upstream platform adapter.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, platform, handle string) (*MetricsSample, error)
}

// Policy orchestrates profile use-cases
type Policy struct {
	svc     *service.Service
	store   *cache.Store
	ttl     time.Duration
	metrics MetricsFetcher

	// Metrics samples are cached in Redis so repeated dashboard opens do
	// not hammer the platform APIs.
	rdb        *redis.Client
	metricsTTL time.Duration

	logger *slog.Logger
}

// New creates a new profile policy
func New(svc *service.Service, store *cache.Store, ttl time.Duration, metrics MetricsFetcher, rdb *redis.Client, metricsTTL time.Duration, logger *slog.Logger) *Policy {
	return &Policy{
		svc:        svc,
		store:      store,
		ttl:        ttl,
		metrics:    metrics,
		rdb:        rdb,
		metricsTTL: metricsTTL,
		logger:     logger,
	}
}

// CreateProfileInput represents input for creating a profile
type CreateProfileInput struct {
	Name     string
	Handle   string
	Platform entity.Platform
	Active   bool
	Notes    string
}

// CreateProfile creates a new profile and inserts it into the cached list
func (p *Policy) CreateProfile(ctx context.Context, in CreateProfileInput) (*entity.Profile, error) {
	prof, err := p.svc.Create(ctx, service.CreateInput{
		Name:     in.Name,
		Handle:   in.Handle,
		Platform: in.Platform,
		Active:   in.Active,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, err
	}

	cache.Apply(p.store, cache.KeyProfiles, func(items []entity.Profile) []entity.Profile {
		// List is newest-first.
		return append([]entity.Profile{*prof}, items...)
	})
	// Membership of the active-only view depends on the flag; refetch it.
	p.store.Invalidate(cache.PrefixProfiles + "active")
	p.store.Mutated(cache.EntityProfile)

	return prof, nil
}

// GetProfile retrieves a profile by ID
func (p *Policy) GetProfile(ctx context.Context, id string) (*entity.Profile, error) {
	return p.svc.GetByID(ctx, id)
}

// UpdateProfileInput represents input for updating a profile
type UpdateProfileInput struct {
	ID       string
	Name     *string
	Handle   *string
	Platform *entity.Platform
	Active   *bool
	Notes    *string
}

// UpdateProfile updates a profile and propagates it into cached lists
func (p *Policy) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.Profile, error) {
	prof, err := p.svc.Update(ctx, service.UpdateInput{
		ID:       in.ID,
		Name:     in.Name,
		Handle:   in.Handle,
		Platform: in.Platform,
		Active:   in.Active,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, err
	}

	p.applyToLists(prof)
	return prof, nil
}

// SetActive toggles the active flag
func (p *Policy) SetActive(ctx context.Context, id string, active bool) (*entity.Profile, error) {
	prof, err := p.svc.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	p.applyToLists(prof)
	return prof, nil
}

// DeleteProfile deletes a profile and removes it from cached lists
func (p *Policy) DeleteProfile(ctx context.Context, id string) error {
	if err := p.svc.Delete(ctx, id); err != nil {
		return err
	}

	cache.ApplyLists(p.store, cache.PrefixProfiles, func(items []entity.Profile) []entity.Profile {
		return cache.Remove(items, func(e entity.Profile) bool { return e.ID == id })
	})
	p.store.Mutated(cache.EntityProfile)

	return nil
}

// ListProfiles retrieves profiles through the query cache
func (p *Policy) ListProfiles(ctx context.Context, activeOnly bool) ([]entity.Profile, error) {
	key := cache.KeyProfiles
	if activeOnly {
		key = cache.PrefixProfiles + "active"
	}
	return cache.Read(ctx, p.store, key, p.ttl, func(ctx context.Context) ([]entity.Profile, error) {
		return p.svc.List(ctx, activeOnly)
	})
}

// FetchMetrics returns the latest metrics sample for a profile. Samples are
// served from Redis while fresh; a new sample is also persisted onto the
// profile row so lists can show follower counts without an upstream call.
func (p *Policy) FetchMetrics(ctx context.Context, profileID string) (*MetricsSample, error) {
	prof, err := p.svc.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	key := "profile:metrics:" + profileID
	if p.rdb != nil {
		raw, err := p.rdb.Get(ctx, key).Result()
		if err == nil {
			var sample MetricsSample
			if err := json.Unmarshal([]byte(raw), &sample); err == nil {
				return &sample, nil
			}
		} else if err != redis.Nil {
			p.logger.Warn("metrics cache read failed", "profile_id", profileID, "error", err)
		}
	}

	sample, err := p.metrics.FetchMetrics(ctx, string(prof.Platform), prof.Handle)
	if err != nil {
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}

	if p.rdb != nil {
		if raw, err := json.Marshal(sample); err == nil {
			if err := p.rdb.Set(ctx, key, raw, p.metricsTTL).Err(); err != nil {
				p.logger.Warn("metrics cache write failed", "profile_id", profileID, "error", err)
			}
		}
	}

	if err := p.svc.StoreMetrics(ctx, profileID, sample.Followers, sample.GrowthRate, sample.EngagementRate); err != nil {
		// The sample itself is still good; losing the row update only
		// delays the next list refresh.
		p.logger.Warn("persisting metrics failed", "profile_id", profileID, "error", err)
	}

	return sample, nil
}

func (p *Policy) applyToLists(prof *entity.Profile) {
	cache.ApplyLists(p.store, cache.PrefixProfiles, func(items []entity.Profile) []entity.Profile {
		return cache.Replace(items, func(e entity.Profile) bool { return e.ID == prof.ID }, *prof)
	})
	// An active-flag change can move the profile in or out of this view.
	p.store.Invalidate(cache.PrefixProfiles + "active")
	p.store.Mutated(cache.EntityProfile)
}
