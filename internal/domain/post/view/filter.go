package view

import (
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
)

// Filter is the active filter set of the post list. A zero dimension means
// "match all" for that dimension; a post passes iff every set dimension
// matches (conjunction).
type Filter struct {
	ProfileID   string
	Status      entity.Status
	ContentType entity.ContentType
	Platform    profileent.Platform
}

// Matches evaluates the filter against one post. platforms resolves a
// profile id to its platform for the platform dimension.
func (f Filter) Matches(p entity.Post, platforms map[string]profileent.Platform) bool {
	if f.ProfileID != "" && !p.Targets(f.ProfileID) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.ContentType != "" && p.ContentType != f.ContentType {
		return false
	}
	if f.Platform != "" {
		matched := false
		for _, id := range p.ProfileIDs {
			if platforms[id] == f.Platform {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Apply filters a post list, preserving order
func (f Filter) Apply(posts []entity.Post, platforms map[string]profileent.Platform) []entity.Post {
	out := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if f.Matches(p, platforms) {
			out = append(out, p)
		}
	}
	return out
}
