package entity

import (
	"time"
)

// ContentType represents the editorial content type of a post
type ContentType string

const (
	ContentTypePost  ContentType = "post"
	ContentTypeReel  ContentType = "reel"
	ContentTypeStory ContentType = "story"
	ContentTypeVideo ContentType = "video"
)

// Format represents the aspect ratio of the content, empty when unset
type Format string

const (
	FormatNone      Format = ""
	FormatSquare    Format = "1:1"
	FormatPortrait  Format = "4:5"
	FormatVertical  Format = "9:16"
	FormatLandscape Format = "16:9"
)

// Status represents the editorial status of a post
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusCanceled  Status = "canceled"
)

// transitions is the validated edge set of the editorial workflow:
// draft -> pending -> approved -> published, canceled from any
// non-terminal state.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusPending, StatusCanceled},
	StatusPending:  {StatusApproved, StatusCanceled},
	StatusApproved: {StatusPublished, StatusCanceled},
}

// Terminal reports whether no further transition is allowed
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusCanceled
}

// CanTransitionTo reports whether the workflow allows moving to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Post represents an editorial record describing content to be published to
// one or more profiles on a given date.
type Post struct {
	ID        string    `json:"id"`
	ProductID *string   `json:"product_id,omitempty"`
	PostAt    time.Time `json:"post_at"`

	// ProfileIDs is the source of truth for targeting. ProfileID mirrors
	// its first element for single-profile consumers and must never
	// diverge; Normalize enforces this on every write path.
	ProfileIDs []string `json:"profile_ids"`
	ProfileID  string   `json:"profile_id,omitempty"`

	ContentType ContentType    `json:"content_type"`
	Format      Format         `json:"format,omitempty"`
	Copies      []PlatformCopy `json:"copies"`
	Hashtags    []string       `json:"hashtags"`
	MediaIDs    []string       `json:"media_ids"`
	Status      Status         `json:"status"`
	LaunchID    *string        `json:"launch_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Normalize derives the legacy single-profile field from ProfileIDs
func (p *Post) Normalize() {
	if len(p.ProfileIDs) > 0 {
		p.ProfileID = p.ProfileIDs[0]
	} else {
		p.ProfileID = ""
	}
}

// Targets reports whether the post targets the given profile
func (p *Post) Targets(profileID string) bool {
	for _, id := range p.ProfileIDs {
		if id == profileID {
			return true
		}
	}
	return false
}

// Validate validates the post invariants
func (p *Post) Validate() error {
	if len(p.ProfileIDs) == 0 {
		return ErrNoProfiles
	}
	if p.ProfileID != p.ProfileIDs[0] {
		return ErrProfileFieldDiverged
	}

	switch p.ContentType {
	case ContentTypePost, ContentTypeReel, ContentTypeStory, ContentTypeVideo:
	default:
		return ErrInvalidContentType
	}

	switch p.Status {
	case StatusDraft, StatusPending, StatusApproved, StatusPublished, StatusCanceled:
	default:
		return ErrInvalidStatus
	}

	// Every profile-scoped copy must reference a targeted profile.
	for _, c := range p.Copies {
		if c.ProfileID != "" && !p.Targets(c.ProfileID) {
			return ErrCopyUnknownProfile
		}
	}

	return nil
}
