package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization.
var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientRole   = errors.New("insufficient role")
)

// Lookups. Every entity-specific not-found error matches ErrNotFound.
var (
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
)

// Workflow.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPartialFulfillment = errors.New("partial fulfillment")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInventoryConflict  = errors.New("inventory changed concurrently")
)
