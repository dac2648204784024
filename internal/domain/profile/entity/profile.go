package entity

import (
	"time"
)

// Platform identifies a social network. The type is an open string: the
// constants below carry semantics in the dashboard (icon, color), anything
// else renders generically.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformX         Platform = "X"
	PlatformPinterest Platform = "Pinterest"
	PlatformYouTube   Platform = "YouTube"
)

// Known reports whether the platform is one of the built-in set
func (p Platform) Known() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformLinkedIn,
		PlatformX, PlatformPinterest, PlatformYouTube:
		return true
	default:
		return false
	}
}

// Profile represents a managed social-media account
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Handle   string   `json:"handle"`
	Platform Platform `json:"platform"`
	Active   bool     `json:"active"`

	// Last known metrics, refreshed from the upstream platform
	Followers      *int64   `json:"followers,omitempty"`
	GrowthRate     *float64 `json:"growth_rate,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the profile fields
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Handle == "" {
		return ErrEmptyHandle
	}
	if p.Platform == "" {
		return ErrEmptyPlatform
	}
	return nil
}
