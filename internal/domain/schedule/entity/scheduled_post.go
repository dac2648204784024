package entity

import (
	"time"
)

// DispatchStatus is the delivery state of a scheduled post
type DispatchStatus string

const (
	DispatchStatusPending DispatchStatus = "pending"
	DispatchStatusSent    DispatchStatus = "sent"
	DispatchStatusFailed  DispatchStatus = "failed"
)

// Content is the payload handed to the platform when the post is dispatched
type Content struct {
	Text      string   `json:"text"`
	Hashtags  []string `json:"hashtags"`
	MediaURLs []string `json:"media_urls"`
}

// ScheduledPost is a one-off publish job for a single profile. It is a
// delivery record, not an editorial one; the editorial post lives in the
// post domain and the two are not reconciled.
type ScheduledPost struct {
	ID           string         `json:"id"`
	ProfileID    string         `json:"profile_id"`
	Content      Content        `json:"content"`
	ScheduledFor time.Time      `json:"scheduled_for"`
	Status       DispatchStatus `json:"status"`
	ExternalID   string         `json:"external_id,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Validate validates the scheduled post fields
func (p *ScheduledPost) Validate() error {
	if p.ProfileID == "" {
		return ErrNoProfile
	}
	if p.Content.Text == "" && len(p.Content.MediaURLs) == 0 {
		return ErrEmptyContent
	}
	if p.ScheduledFor.IsZero() {
		return ErrNoSchedule
	}
	return nil
}
