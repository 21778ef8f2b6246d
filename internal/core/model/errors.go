package model

import "errors"

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrDuplicateEmail is returned when a registration reuses an email, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrDuplicateUsername is returned when a registration or rename reuses a username, compared case-insensitively.
	ErrDuplicateUsername = errors.New("username is already taken")

	// ErrInvalidArgument is returned when a mandatory argument is absent or structurally invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation is returned for malformed free-text input surfaced to the caller for correction.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when the caller is not allowed to perform the operation.
	ErrUnauthorized = errors.New("operation not allowed")
)
