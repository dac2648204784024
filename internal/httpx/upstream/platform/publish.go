package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SchedulePostInput represents a publish job handed to a platform
type SchedulePostInput struct {
	Platform     string
	Handle       string
	Text         string
	Hashtags     []string
	MediaURLs    []string
	ScheduledFor time.Time
}

// ScheduleResult carries the platform-side identifier of a scheduled post
type ScheduleResult struct {
	ExternalID string `json:"external_id"`
}

// SchedulePost hands a publish job to the platform and returns its external
// id. Without a configured credential the id is synthesized and nothing is
// published anywhere.
func (c *Client) SchedulePost(ctx context.Context, in SchedulePostInput) (*ScheduleResult, error) {
	token := c.credential(in.Platform)
	base := c.endpoint(in.Platform)
	if token == "" || base == "" {
		return &ScheduleResult{ExternalID: c.synthExternalID(in.Platform)}, nil
	}

	payload := map[string]interface{}{
		"handle":        in.Handle,
		"text":          in.Text,
		"hashtags":      in.Hashtags,
		"media_urls":    in.MediaURLs,
		"scheduled_for": in.ScheduledFor.Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/content/schedule", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, in.Platform, &out); err != nil {
		return nil, err
	}

	return &ScheduleResult{ExternalID: out.ID}, nil
}
