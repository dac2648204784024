package entity

import "errors"

// Domain errors for media kit resources
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyURL         = errors.New("url cannot be empty")
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmptyUpload      = errors.New("upload body is empty")
)
