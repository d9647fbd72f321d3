package domain

import (
	"errors"
)

// Sentinel errors for the core error taxonomy - use with errors.Is()
var (
	// ErrNotFound indicates a referenced discussion or operation is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation on a discussion's starting number.
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the request carries no verified identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the actor is not the resource's author.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidReference indicates a parent operation that belongs to a
	// different discussion than the one named in the request.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidOperation indicates an unrecognized operation kind or a
	// division by zero.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrIntegrity indicates storage corruption, such as a parent chain
	// longer than the discussion's own operation count. Non-retryable;
	// an alerting condition rather than a client-facing validation error.
	ErrIntegrity = errors.New("integrity violation")
)

// ConflictError represents a starting-number conflict with details about
// the existing discussion, so callers can return it as a hint.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (discussion)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
