package entity

import "errors"

// Domain errors for protocols
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrProtocolNotFound = errors.New("protocol not found")
)
