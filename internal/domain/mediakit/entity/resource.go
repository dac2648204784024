package entity

import (
	"time"
)

// Resource represents one downloadable media kit asset (logo pack, brand
// guide, template, press photo).
type Resource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	StorageKey  string    `json:"-"`
	Format      string    `json:"format"`
	FileSize    int64     `json:"file_size"`
	Tags        []string  `json:"tags"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate validates the resource fields
func (r *Resource) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.URL == "" {
		return ErrEmptyURL
	}
	return nil
}
