package models

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Handlers match them with errors.Is and map them to HTTP statuses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidRole        = errors.New("invalid role")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrForbidden          = errors.New("forbidden")
)
