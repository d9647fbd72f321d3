package services

import (
	"context"

	"mathboard/internal/domain/models"
)

// CreateDiscussionRequest represents a request to start a discussion.
// StartingNumber is a pointer so a missing field is distinguishable from
// a legitimate zero.
type CreateDiscussionRequest struct {
	AuthorID       string   `json:"author_id"`
	StartingNumber *float64 `json:"starting_number"`
}

// UpdateDiscussionRequest represents a request to move a discussion to a
// new starting number. Only the discussion's author may do this.
type UpdateDiscussionRequest struct {
	RequestorID    string   `json:"requestor_id"`
	StartingNumber *float64 `json:"starting_number"`
}

// DiscussionService defines business logic operations for discussions
type DiscussionService interface {
	// CreateDiscussion starts a new discussion on a globally unique
	// starting number
	CreateDiscussion(ctx context.Context, req *CreateDiscussionRequest) (*models.Discussion, error)

	// GetDiscussion retrieves a discussion with its operations attached,
	// oldest-first
	GetDiscussion(ctx context.Context, id string) (*models.Discussion, error)

	// GetDiscussionByStartingNumber retrieves the discussion anchored on
	// the given value
	GetDiscussionByStartingNumber(ctx context.Context, value float64) (*models.Discussion, error)

	// ListDiscussions retrieves all discussions newest-first, each with
	// its operations oldest-first
	ListDiscussions(ctx context.Context) ([]models.Discussion, error)

	// UpdateStartingNumber changes a discussion's starting number after
	// re-validating uniqueness. Author-only.
	UpdateStartingNumber(ctx context.Context, id string, req *UpdateDiscussionRequest) (*models.Discussion, error)
}
