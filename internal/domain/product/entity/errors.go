package entity

import "errors"

// Domain errors for products
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrProductNotFound = errors.New("product not found")
)
