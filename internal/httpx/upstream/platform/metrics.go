package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MetricsSample is one snapshot of account metrics for a profile
type MetricsSample struct {
	Platform       string    `json:"platform"`
	Handle         string    `json:"handle"`
	Followers      int64     `json:"followers"`
	GrowthRate     float64   `json:"growth_rate"`
	EngagementRate float64   `json:"engagement_rate"`
	Impressions    int64     `json:"impressions"`
	Reach          int64     `json:"reach"`
	CollectedAt    time.Time `json:"collected_at"`

	// Synthetic marks samples generated locally because no credential is
	// configured for the platform.
	Synthetic bool `json:"synthetic"`
}

// FetchMetrics retrieves the current metrics for a handle on a platform.
// Without a configured credential the sample is synthesized.
func (c *Client) FetchMetrics(ctx context.Context, platform, handle string) (*MetricsSample, error) {
	token := c.credential(platform)
	if token == "" {
		return c.synthMetrics(platform, handle), nil
	}

	endpoint, params := c.metricsRequest(platform, handle, token)
	if endpoint == "" {
		// Custom platform with a credential we cannot route; fall back.
		return c.synthMetrics(platform, handle), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out struct {
		Followers      int64   `json:"followers_count"`
		GrowthRate     float64 `json:"growth_rate"`
		EngagementRate float64 `json:"engagement_rate"`
		Impressions    int64   `json:"impressions"`
		Reach          int64   `json:"reach"`
	}
	if err := c.do(req, platform, &out); err != nil {
		return nil, err
	}

	return &MetricsSample{
		Platform:       platform,
		Handle:         handle,
		Followers:      out.Followers,
		GrowthRate:     out.GrowthRate,
		EngagementRate: out.EngagementRate,
		Impressions:    out.Impressions,
		Reach:          out.Reach,
		CollectedAt:    time.Now(),
	}, nil
}

// metricsRequest builds the per-platform metrics endpoint and query
func (c *Client) metricsRequest(platform, handle, token string) (string, url.Values) {
	params := url.Values{}
	base := c.endpoint(platform)
	if base == "" {
		return "", nil
	}

	switch platform {
	case Instagram:
		params.Set("fields", "followers_count,media_count")
		return base + "/me", params
	case TikTok:
		params.Set("fields", "follower_count,likes_count")
		return base + "/user/info/", params
	case YouTube:
		params.Set("part", "statistics")
		params.Set("forHandle", handle)
		return base + "/channels", params
	default:
		params.Set("handle", handle)
		return base + "/account/metrics", params
	}
}
