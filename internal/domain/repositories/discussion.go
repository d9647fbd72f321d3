package repositories

import (
	"context"

	"mathboard/internal/domain/models"
)

// DiscussionRepository defines data access operations for discussions
type DiscussionRepository interface {
	// Create inserts a new discussion and fills in its generated ID and
	// timestamp. The starting-number uniqueness check is the database's
	// unique constraint; a violation surfaces as a ConflictError carrying
	// the existing discussion's ID.
	Create(ctx context.Context, discussion *models.Discussion) error

	// GetByID retrieves a discussion by ID, without its operations
	GetByID(ctx context.Context, id string) (*models.Discussion, error)

	// GetByStartingNumber retrieves the discussion anchored on the given
	// value, or ErrNotFound if the value is free
	GetByStartingNumber(ctx context.Context, value float64) (*models.Discussion, error)

	// List retrieves all discussions, newest-first by creation time
	List(ctx context.Context) ([]models.Discussion, error)

	// UpdateStartingNumber moves a discussion to a new starting number.
	// The uniqueness constraint applies as in Create.
	UpdateStartingNumber(ctx context.Context, id string, value float64) (*models.Discussion, error)

	// Delete removes a discussion; its operations go with it (cascade).
	// Not exposed by any route, kept for store consistency.
	Delete(ctx context.Context, id string) error
}
