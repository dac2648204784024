package entity

import (
	"time"
)

// PhaseStatus is the progress state of a launch phase. Free-form enum, no
// validated transition graph.
type PhaseStatus string

const (
	PhaseStatusNotStarted PhaseStatus = "not_started"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
	PhaseStatusBlocked    PhaseStatus = "blocked"
)

// Phase represents one stage of a launch timeline
type Phase struct {
	ID          string      `json:"id"`
	LaunchID    string      `json:"launch_id"`
	Name        string      `json:"name"`
	Status      PhaseStatus `json:"status"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Responsible string      `json:"responsible"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Validate validates the phase fields
func (p *Phase) Validate() error {
	if p.LaunchID == "" {
		return ErrPhaseWithoutLaunch
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidDates
	}
	return nil
}
