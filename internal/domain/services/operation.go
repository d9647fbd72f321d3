package services

import (
	"context"

	"mathboard/internal/domain/models"
)

// CreateOperationRequest represents a request to attach an operation node.
// ParentID nil means the node applies to the discussion's starting number.
// Kind arrives as a string and is parsed against the closed enumeration.
type CreateOperationRequest struct {
	DiscussionID string   `json:"discussion_id"`
	ParentID     *string  `json:"parent_id,omitempty"`
	Kind         string   `json:"operation_type"`
	Operand      *float64 `json:"operand"`
	AuthorID     string   `json:"author_id"`
}

// OperationService defines business logic operations for computation-tree
// nodes
type OperationService interface {
	// CreateOperation resolves the previous value (starting number or
	// parent result), computes the node's result and persists it
	// atomically
	CreateOperation(ctx context.Context, req *CreateOperationRequest) (*models.Operation, error)

	// GetOperation retrieves an operation with its parent, direct
	// children and owning discussion attached
	GetOperation(ctx context.Context, id string) (*models.OperationDetail, error)

	// ListOperations lists a discussion's operations oldest-first.
	// Returns ErrNotFound if the discussion itself is absent.
	ListOperations(ctx context.Context, discussionID string) ([]models.Operation, error)

	// ListChildren lists an operation's direct children oldest-first
	ListChildren(ctx context.Context, operationID string) ([]models.Operation, error)

	// ListRoots lists a discussion's parentless operations oldest-first
	ListRoots(ctx context.Context, discussionID string) ([]models.Operation, error)

	// CountOperations returns the number of operations in a discussion
	CountOperations(ctx context.Context, discussionID string) (int, error)
}
