package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vadim/contentdesk/internal/domain/launch/dao"
	"github.com/vadim/contentdesk/internal/domain/launch/entity"
)

// Service handles business logic for launches and their phases
type Service struct {
	launches dao.LaunchRepository
	phases   dao.PhaseRepository
}

// New creates a new launch service
func New(launches dao.LaunchRepository, phases dao.PhaseRepository) *Service {
	return &Service{launches: launches, phases: phases}
}

// CreateInput represents input for creating a launch
type CreateInput struct {
	Name        string
	ProductID   *string
	Category    entity.Category
	Status      entity.LaunchStatus
	StartDate   time.Time
	EndDate     time.Time
	Responsible string
	Description string
}

// CreateLaunch creates a new launch
func (s *Service) CreateLaunch(ctx context.Context, in CreateInput) (*entity.Launch, error) {
	now := time.Now()

	status := in.Status
	if status == "" {
		status = entity.LaunchStatusPlanned
	}

	launch := &entity.Launch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ProductID:   in.ProductID,
		Category:    in.Category,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Responsible: in.Responsible,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := launch.Validate(); err != nil {
		return nil, err
	}

	if err := s.launches.Create(ctx, launch); err != nil {
		return nil, err
	}

	return launch, nil
}

// GetByID retrieves a launch by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Launch, error) {
	launch, err := s.launches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if launch == nil {
		return nil, entity.ErrLaunchNotFound
	}
	return launch, nil
}

// UpdateInput represents input for updating a launch; nil fields keep their
// current value
type UpdateInput struct {
	ID          string
	Name        *string
	ProductID   *string
	Category    *entity.Category
	Status      *entity.LaunchStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Responsible *string
	Description *string
}

// UpdateLaunch updates an existing launch
func (s *Service) UpdateLaunch(ctx context.Context, in UpdateInput) (*entity.Launch, error) {
	launch, err := s.launches.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if launch == nil {
		return nil, entity.ErrLaunchNotFound
	}

	if in.Name != nil {
		launch.Name = *in.Name
	}
	if in.ProductID != nil {
		launch.ProductID = in.ProductID
	}
	if in.Category != nil {
		launch.Category = *in.Category
	}
	if in.Status != nil {
		launch.Status = *in.Status
	}
	if in.StartDate != nil {
		launch.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		launch.EndDate = *in.EndDate
	}
	if in.Responsible != nil {
		launch.Responsible = *in.Responsible
	}
	if in.Description != nil {
		launch.Description = *in.Description
	}

	launch.UpdatedAt = time.Now()

	if err := launch.Validate(); err != nil {
		return nil, err
	}

	if err := s.launches.Update(ctx, launch); err != nil {
		return nil, err
	}

	return launch, nil
}

// DeleteLaunch removes a launch and its phases
func (s *Service) DeleteLaunch(ctx context.Context, id string) error {
	launch, err := s.launches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if launch == nil {
		return entity.ErrLaunchNotFound
	}

	return s.launches.Delete(ctx, id)
}

// ListLaunches retrieves launches with filtering
func (s *Service) ListLaunches(ctx context.Context, filter dao.LaunchFilter) ([]entity.Launch, error) {
	return s.launches.List(ctx, filter)
}

// CreatePhaseInput represents input for creating a phase
type CreatePhaseInput struct {
	LaunchID    string
	Name        string
	Status      entity.PhaseStatus
	StartDate   time.Time
	EndDate     time.Time
	Responsible string
	Notes       string
}

// CreatePhase creates a new phase under an existing launch
func (s *Service) CreatePhase(ctx context.Context, in CreatePhaseInput) (*entity.Phase, error) {
	launch, err := s.launches.GetByID(ctx, in.LaunchID)
	if err != nil {
		return nil, err
	}
	if launch == nil {
		return nil, entity.ErrLaunchNotFound
	}

	now := time.Now()

	status := in.Status
	if status == "" {
		status = entity.PhaseStatusNotStarted
	}

	phase := &entity.Phase{
		ID:          uuid.New().String(),
		LaunchID:    in.LaunchID,
		Name:        in.Name,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Responsible: in.Responsible,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := phase.Validate(); err != nil {
		return nil, err
	}

	if err := s.phases.Create(ctx, phase); err != nil {
		return nil, err
	}

	return phase, nil
}

// UpdatePhaseInput represents input for updating a phase
type UpdatePhaseInput struct {
	ID          string
	Name        *string
	Status      *entity.PhaseStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Responsible *string
	Notes       *string
}

// UpdatePhase updates an existing phase
func (s *Service) UpdatePhase(ctx context.Context, in UpdatePhaseInput) (*entity.Phase, error) {
	phase, err := s.phases.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if phase == nil {
		return nil, entity.ErrPhaseNotFound
	}

	if in.Name != nil {
		phase.Name = *in.Name
	}
	if in.Status != nil {
		phase.Status = *in.Status
	}
	if in.StartDate != nil {
		phase.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		phase.EndDate = *in.EndDate
	}
	if in.Responsible != nil {
		phase.Responsible = *in.Responsible
	}
	if in.Notes != nil {
		phase.Notes = *in.Notes
	}

	phase.UpdatedAt = time.Now()

	if err := phase.Validate(); err != nil {
		return nil, err
	}

	if err := s.phases.Update(ctx, phase); err != nil {
		return nil, err
	}

	return phase, nil
}

// DeletePhase removes a phase
func (s *Service) DeletePhase(ctx context.Context, id string) error {
	phase, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if phase == nil {
		return entity.ErrPhaseNotFound
	}

	return s.phases.Delete(ctx, id)
}

// GetPhase retrieves a phase by ID
func (s *Service) GetPhase(ctx context.Context, id string) (*entity.Phase, error) {
	phase, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if phase == nil {
		return nil, entity.ErrPhaseNotFound
	}
	return phase, nil
}

// ListPhases retrieves the phases of one launch
func (s *Service) ListPhases(ctx context.Context, launchID string) ([]entity.Phase, error) {
	return s.phases.ListByLaunch(ctx, launchID)
}
