package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mathboard/internal/config"
	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
	"mathboard/internal/domain/services"
)

// chainService implements the ChainService interface
type chainService struct {
	operationRepo repositories.OperationRepository
	logger        *slog.Logger
}

// NewChainService creates a new chain service
func NewChainService(
	operationRepo repositories.OperationRepository,
	logger *slog.Logger,
) services.ChainService {
	return &chainService{
		operationRepo: operationRepo,
		logger:        logger,
	}
}

// ResolveChain walks parent links from the named operation up to a root
// operation and returns the path root-first. Creation-time checks make
// cycles structurally impossible (a parent must already exist when its
// child is created), so the walk terminates; the iteration bound is the
// discussion's operation count, and exceeding it means the stored tree is
// corrupt, reported as ErrIntegrity.
func (s *chainService) ResolveChain(ctx context.Context, operationID string) ([]models.Operation, error) {
	if err := validateID(operationID); err != nil {
		return nil, fmt.Errorf("%w: operation id: %v", domain.ErrValidation, err)
	}

	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	bound, err := s.operationRepo.CountByDiscussion(ctx, op.DiscussionID)
	if err != nil || bound <= 0 {
		bound = config.MaxChainDepthHardCap
	}

	// Collected leaf-to-root, reversed at the end
	chain := []models.Operation{*op}
	for op.ParentID != nil {
		// A chain can never hold more nodes than the discussion has
		if len(chain) >= bound {
			s.logger.Error("chain resolution exceeded discussion operation count",
				"operation_id", operationID,
				"discussion_id", op.DiscussionID,
				"bound", bound,
			)
			return nil, fmt.Errorf("chain for operation %s exceeds %d nodes: %w",
				operationID, bound, domain.ErrIntegrity)
		}

		parent, err := s.operationRepo.GetByID(ctx, *op.ParentID)
		if err != nil {
			// A dangling parent pointer is corruption, not a client error
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("operation %s references missing parent %s: %w",
					op.ID, *op.ParentID, domain.ErrIntegrity)
			}
			return nil, err
		}
		chain = append(chain, *parent)
		op = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}
