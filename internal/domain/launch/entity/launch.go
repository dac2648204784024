package entity

import (
	"time"
)

// Category classifies a launch. Free-form, the constants cover the values
// the dashboard offers.
type Category string

const (
	CategoryProduct   Category = "product"
	CategoryCampaign  Category = "campaign"
	CategoryPromotion Category = "promotion"
	CategoryEvergreen Category = "evergreen"
	CategorySeasonal  Category = "seasonal"
)

// LaunchStatus is the coarse state of a launch. No validated transition
// graph; any assignment is allowed.
type LaunchStatus string

const (
	LaunchStatusPlanned   LaunchStatus = "planned"
	LaunchStatusActive    LaunchStatus = "active"
	LaunchStatusCompleted LaunchStatus = "completed"
	LaunchStatusOnHold    LaunchStatus = "on_hold"
)

// Launch represents a product launch window grouping posts and phases
type Launch struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ProductID   *string      `json:"product_id,omitempty"`
	Category    Category     `json:"category"`
	Status      LaunchStatus `json:"status"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Responsible string       `json:"responsible"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate validates the launch fields
func (l *Launch) Validate() error {
	if l.Name == "" {
		return ErrEmptyName
	}
	if l.EndDate.Before(l.StartDate) {
		return ErrInvalidDates
	}
	return nil
}
