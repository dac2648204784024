package entity

import (
	"time"
)

// Product represents a product the content calendar promotes
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreativeConcept string    `json:"creative_concept"`
	LandingURL      string    `json:"landing_url"`
	CommKitURL      string    `json:"comm_kit_url"`
	Countries       []string  `json:"countries"`
	Hashtags        []string  `json:"hashtags"`
	SalesObjectives []string  `json:"sales_objectives"`
	Briefing        string    `json:"briefing"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate validates the product fields
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	return nil
}
