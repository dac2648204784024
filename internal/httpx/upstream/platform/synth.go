package platform

import (
	"fmt"
	"time"
)

// Synthesized results keep the dashboard usable without platform
// credentials. Values are random but stay inside plausible ranges for a
// mid-sized brand account.

func (c *Client) synthMetrics(platform, handle string) *MetricsSample {
	c.mu.Lock()
	defer c.mu.Unlock()

	followers := int64(1_000 + c.rnd.Intn(500_000))
	return &MetricsSample{
		Platform:       platform,
		Handle:         handle,
		Followers:      followers,
		GrowthRate:     -2.0 + c.rnd.Float64()*10.0,
		EngagementRate: 0.5 + c.rnd.Float64()*8.5,
		Impressions:    followers * int64(2+c.rnd.Intn(8)),
		Reach:          followers + int64(c.rnd.Intn(int(followers)+1)),
		CollectedAt:    time.Now(),
		Synthetic:      true,
	}
}

func (c *Client) synthExternalID(platform string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fmt.Sprintf("sim-%s-%08x", shortName(platform), c.rnd.Uint32())
}

func shortName(platform string) string {
	switch platform {
	case Instagram:
		return "ig"
	case TikTok:
		return "tt"
	case LinkedIn:
		return "li"
	case X:
		return "x"
	case Pinterest:
		return "pin"
	case YouTube:
		return "yt"
	default:
		return "gen"
	}
}
