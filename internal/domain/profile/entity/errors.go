package entity

import "errors"

// Domain errors for profiles
var (
	ErrEmptyName     = errors.New("profile name is required")
	ErrEmptyHandle   = errors.New("profile handle is required")
	ErrEmptyPlatform = errors.New("profile platform is required")

	ErrProfileNotFound = errors.New("profile not found")
)
