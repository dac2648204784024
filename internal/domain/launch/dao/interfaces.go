package dao

import (
	"context"

	"github.com/vadim/contentdesk/internal/domain/launch/entity"
)

// LaunchFilter contains filters for listing launches
type LaunchFilter struct {
	ProductID string
	Status    *entity.LaunchStatus
	Category  *entity.Category
}

// LaunchRepository defines the interface for launch data access
type LaunchRepository interface {
	// Create inserts a new launch
	Create(ctx context.Context, launch *entity.Launch) error

	// GetByID retrieves a launch by its ID
	GetByID(ctx context.Context, id string) (*entity.Launch, error)

	// Update updates an existing launch
	Update(ctx context.Context, launch *entity.Launch) error

	// Delete removes a launch together with its phases, atomically
	Delete(ctx context.Context, id string) error

	// List retrieves launches with optional filtering
	List(ctx context.Context, filter LaunchFilter) ([]entity.Launch, error)
}

// PhaseRepository defines the interface for launch phase data access
type PhaseRepository interface {
	// Create inserts a new phase
	Create(ctx context.Context, phase *entity.Phase) error

	// GetByID retrieves a phase by its ID
	GetByID(ctx context.Context, id string) (*entity.Phase, error)

	// Update updates an existing phase
	Update(ctx context.Context, phase *entity.Phase) error

	// Delete removes a phase by ID
	Delete(ctx context.Context, id string) error

	// ListByLaunch retrieves the phases of one launch ordered by start date
	ListByLaunch(ctx context.Context, launchID string) ([]entity.Phase, error)
}
