package repositories

import (
	"context"

	"mathboard/internal/domain/models"
)

// OperationRepository defines data access operations for computation-tree
// nodes. All "oldest-first" listings order by (created_at ASC, id ASC) so
// the order is total and stable.
type OperationRepository interface {
	// Create inserts a new operation with its precomputed result and
	// fills in the generated ID and timestamp
	Create(ctx context.Context, op *models.Operation) error

	// GetByID retrieves an operation by ID
	GetByID(ctx context.Context, id string) (*models.Operation, error)

	// ListByDiscussion lists a discussion's operations, oldest-first
	ListByDiscussion(ctx context.Context, discussionID string) ([]models.Operation, error)

	// ListChildren lists the direct children of an operation, oldest-first
	ListChildren(ctx context.Context, operationID string) ([]models.Operation, error)

	// ListRoots lists a discussion's parentless operations, oldest-first
	ListRoots(ctx context.Context, discussionID string) ([]models.Operation, error)

	// CountByDiscussion returns the number of operations in a discussion
	CountByDiscussion(ctx context.Context, discussionID string) (int, error)
}
