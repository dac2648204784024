package entity

import (
	"time"
)

// ProtocolType classifies a protocol document. Free string; the constants
// cover the common values.
type ProtocolType string

const (
	ProtocolTypeGuideline ProtocolType = "guideline"
	ProtocolTypeChecklist ProtocolType = "checklist"
	ProtocolTypeWorkflow  ProtocolType = "workflow"
	ProtocolTypeBranding  ProtocolType = "branding"
)

// Protocol represents a working-agreement document for the content team
type Protocol struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ProtocolType `json:"type"`
	Content     string       `json:"content"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate validates the protocol fields
func (p *Protocol) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}
