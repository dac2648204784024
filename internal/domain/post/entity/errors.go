package entity

import "errors"

// Domain errors for posts
var (
	// Validation errors
	ErrNoProfiles           = errors.New("at least one profile must be selected")
	ErrProfileFieldDiverged = errors.New("profile_id does not match the first selected profile")
	ErrInvalidContentType   = errors.New("invalid content type")
	ErrInvalidStatus        = errors.New("invalid post status")
	ErrCopyUnknownProfile   = errors.New("copy references a profile the post does not target")

	// Business logic errors
	ErrPostNotFound     = errors.New("post not found")
	ErrStatusTransition = errors.New("status transition not allowed")
	ErrInvalidDateRange = errors.New("date range is invalid")
)
