package services

import (
	"context"

	"mathboard/internal/domain/models"
)

// ChainService reconstructs the ordered path of operations from a
// discussion's root down to a given node
type ChainService interface {
	// ResolveChain returns the operations on the path root-to-leaf ending
	// at operationID. The discussion's starting number is not a node and
	// is not included; callers read the discussion separately.
	ResolveChain(ctx context.Context, operationID string) ([]models.Operation, error)
}
