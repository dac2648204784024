package compose

import (
	"github.com/vadim/contentdesk/internal/domain/post/entity"
	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
)

// Draft is the per-profile working copy of a post
type Draft struct {
	Content  string
	Hashtags []string
}

// ProfileRef is the slice of a profile the composer needs
type ProfileRef struct {
	ID       string
	Platform profileent.Platform
}

// PlatformGroup is one platform tab: the platform and its selected profiles
// in selection order.
type PlatformGroup struct {
	Platform profileent.Platform
	Profiles []ProfileRef
}

// Composer maintains the multi-profile copy state of the post editor.
// Invariant: the key set of the draft map equals the current selection
// exactly, restored by SetSelection after every selection change.
type Composer struct {
	profiles map[string]ProfileRef
	selected []string
	drafts   map[string]Draft
}

// New creates a composer over the known profiles
func New(profiles []ProfileRef) *Composer {
	byID := make(map[string]ProfileRef, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return &Composer{
		profiles: byID,
		drafts:   make(map[string]Draft),
	}
}

// Selection returns the ordered selected profile ids
func (c *Composer) Selection() []string {
	out := make([]string, len(c.selected))
	copy(out, c.selected)
	return out
}

// DraftIDs returns the profile ids that currently hold a draft, unordered
func (c *Composer) DraftIDs() []string {
	out := make([]string, 0, len(c.drafts))
	for id := range c.drafts {
		out = append(out, id)
	}
	return out
}

// Draft returns the working copy for a profile id
func (c *Composer) Draft(profileID string) (Draft, bool) {
	d, ok := c.drafts[profileID]
	return d, ok
}

// SetDraft replaces the working copy for a selected profile; ids outside the
// selection are ignored.
func (c *Composer) SetDraft(profileID string, d Draft) {
	if _, ok := c.drafts[profileID]; !ok {
		return
	}
	c.drafts[profileID] = d
}

// SetSelection syncs the draft map to the new selection: added ids get an
// empty draft, removed ids lose theirs. Idempotent and re-entrant; applying
// the same selection twice is a no-op.
func (c *Composer) SetSelection(profileIDs []string) {
	keep := make(map[string]bool, len(profileIDs))
	for _, id := range profileIDs {
		keep[id] = true
		if _, ok := c.drafts[id]; !ok {
			c.drafts[id] = Draft{Hashtags: []string{}}
		}
	}
	for id := range c.drafts {
		if !keep[id] {
			delete(c.drafts, id)
		}
	}

	c.selected = make([]string, len(profileIDs))
	copy(c.selected, profileIDs)
}

// PlatformGroups partitions the selection by platform, ordered by first
// appearance in the selection. One group renders as one editor tab.
func (c *Composer) PlatformGroups() []PlatformGroup {
	var groups []PlatformGroup
	index := make(map[profileent.Platform]int)

	for _, id := range c.selected {
		ref, ok := c.profiles[id]
		if !ok {
			continue
		}
		i, seen := index[ref.Platform]
		if !seen {
			index[ref.Platform] = len(groups)
			groups = append(groups, PlatformGroup{Platform: ref.Platform})
			i = len(groups) - 1
		}
		groups[i].Profiles = append(groups[i].Profiles, ref)
	}

	return groups
}

// CopyToPlatform copies the source profile's draft verbatim to every other
// selected profile on the same platform. Profiles on other platforms and
// the source itself are untouched.
func (c *Composer) CopyToPlatform(sourceID string) {
	src, ok := c.profiles[sourceID]
	if !ok {
		return
	}
	draft, ok := c.drafts[sourceID]
	if !ok {
		return
	}

	for _, id := range c.selected {
		if id == sourceID {
			continue
		}
		ref, ok := c.profiles[id]
		if !ok || ref.Platform != src.Platform {
			continue
		}
		c.drafts[id] = Draft{
			Content:  draft.Content,
			Hashtags: append([]string{}, draft.Hashtags...),
		}
	}
}

// Import initializes drafts from persisted copies. Entries carrying a
// profile id are assigned directly; platform-level legacy entries broadcast
// to every selected profile of that platform that has no assigned entry yet,
// first-write-wins.
func (c *Composer) Import(copies []entity.PlatformCopy) {
	assigned := make(map[string]bool)

	for _, cp := range copies {
		if cp.ProfileID == "" {
			continue
		}
		if _, ok := c.drafts[cp.ProfileID]; !ok {
			continue
		}
		c.drafts[cp.ProfileID] = Draft{
			Content:  cp.Content,
			Hashtags: append([]string{}, cp.Hashtags...),
		}
		assigned[cp.ProfileID] = true
	}

	for _, cp := range copies {
		if cp.ProfileID != "" {
			continue
		}
		for _, id := range c.selected {
			ref, ok := c.profiles[id]
			if !ok || string(ref.Platform) != cp.Platform || assigned[id] {
				continue
			}
			c.drafts[id] = Draft{
				Content:  cp.Content,
				Hashtags: append([]string{}, cp.Hashtags...),
			}
			assigned[id] = true
		}
	}
}

// Export flattens the drafts back to a copy list in selection order. The
// second return value lists profile ids that no longer resolve to a known
// profile; their content is dropped from the export and the caller decides
// whether to warn.
func (c *Composer) Export() ([]entity.PlatformCopy, []string) {
	copies := make([]entity.PlatformCopy, 0, len(c.selected))
	var dropped []string

	for _, id := range c.selected {
		ref, ok := c.profiles[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		draft := c.drafts[id]
		copies = append(copies, entity.PlatformCopy{
			Platform:  string(ref.Platform),
			Content:   draft.Content,
			Hashtags:  append([]string{}, draft.Hashtags...),
			ProfileID: id,
		})
	}

	return copies, dropped
}

// Validate checks the submission precondition: at least one selected profile
func (c *Composer) Validate() error {
	if len(c.selected) == 0 {
		return entity.ErrNoProfiles
	}
	return nil
}
