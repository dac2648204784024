package entity

import "errors"

// Domain errors for launches and phases
var (
	// Validation errors
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidDates       = errors.New("end date is before start date")
	ErrPhaseWithoutLaunch = errors.New("phase must belong to a launch")

	// Business logic errors
	ErrLaunchNotFound = errors.New("launch not found")
	ErrPhaseNotFound  = errors.New("phase not found")
)
