package entity

import "errors"

// Domain errors for scheduled posts
var (
	// Validation errors
	ErrNoProfile    = errors.New("scheduled post must target a profile")
	ErrEmptyContent = errors.New("scheduled post has no text and no media")
	ErrNoSchedule   = errors.New("scheduled_for must be set")

	// Business logic errors
	ErrScheduledPostNotFound = errors.New("scheduled post not found")
	ErrAlreadyDispatched     = errors.New("scheduled post was already dispatched")
)
