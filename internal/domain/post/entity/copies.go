package entity

import (
	"encoding/json"
)

// PlatformCopy is the per-target text of a post. Entries with a ProfileID
// are scoped to that profile; entries without one are legacy platform-level
// copies that apply to every targeted profile of the platform.
type PlatformCopy struct {
	Platform  string   `json:"platform"`
	Content   string   `json:"content"`
	Hashtags  []string `json:"hashtags"`
	ProfileID string   `json:"profile_id,omitempty"`
}

// ParseCopies decodes the stored copies column defensively. Historic rows
// hold either a JSON list, or a JSON string wrapping such a list (the
// double-encoded legacy format); anything else parses to nil.
func ParseCopies(raw []byte) []PlatformCopy {
	if len(raw) == 0 {
		return nil
	}

	var copies []PlatformCopy
	if err := json.Unmarshal(raw, &copies); err == nil {
		return copies
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &copies); err == nil {
			return copies
		}
	}

	return nil
}

// EncodeCopies encodes copies for storage; always a JSON list, never the
// legacy double-encoded form.
func EncodeCopies(copies []PlatformCopy) []byte {
	if copies == nil {
		copies = []PlatformCopy{}
	}
	raw, err := json.Marshal(copies)
	if err != nil {
		// []PlatformCopy cannot fail to marshal.
		return []byte("[]")
	}
	return raw
}
