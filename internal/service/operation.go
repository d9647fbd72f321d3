package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mathboard/internal/domain"
	"mathboard/internal/domain/compute"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
	"mathboard/internal/domain/services"
)

// operationService implements the OperationService interface
type operationService struct {
	discussionRepo repositories.DiscussionRepository
	operationRepo  repositories.OperationRepository
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewOperationService creates a new operation service
func NewOperationService(
	discussionRepo repositories.DiscussionRepository,
	operationRepo repositories.OperationRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.OperationService {
	return &operationService{
		discussionRepo: discussionRepo,
		operationRepo:  operationRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateOperation attaches a node to a discussion's computation tree. The
// previous-value read and the insert run in one transaction, so the node
// and its stored result are written atomically or not at all. Siblings
// don't contend: parent values are immutable once written.
func (s *operationService) CreateOperation(ctx context.Context, req *services.CreateOperationRequest) (*models.Operation, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Unrecognized kind strings are malformed input at this boundary;
	// the engine's own kind check guards compiled callers.
	kind, err := models.ParseOperationKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	op := &models.Operation{
		DiscussionID: req.DiscussionID,
		ParentID:     req.ParentID,
		Kind:         kind,
		Operand:      *req.Operand,
		AuthorID:     req.AuthorID,
		CreatedAt:    time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		previous, err := s.resolvePreviousValue(txCtx, req.DiscussionID, req.ParentID)
		if err != nil {
			return err
		}

		result, err := compute.Apply(previous, kind, op.Operand)
		if err != nil {
			return err
		}
		op.Result = result

		return s.operationRepo.Create(txCtx, op)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("operation created",
		"id", op.ID,
		"discussion_id", op.DiscussionID,
		"kind", op.Kind,
		"operand", op.Operand,
		"result", op.Result,
		"author_id", op.AuthorID,
	)

	return op, nil
}

// resolvePreviousValue returns the value the new node applies to: the
// parent's result, or the discussion's starting number for root nodes.
func (s *operationService) resolvePreviousValue(ctx context.Context, discussionID string, parentID *string) (float64, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, discussionID)
	if err != nil {
		return 0, err
	}

	if parentID == nil {
		return discussion.StartingNumber, nil
	}

	parent, err := s.operationRepo.GetByID(ctx, *parentID)
	if err != nil {
		return 0, err
	}

	if parent.DiscussionID != discussionID {
		return 0, fmt.Errorf("parent operation %s belongs to discussion %s: %w",
			parent.ID, parent.DiscussionID, domain.ErrInvalidReference)
	}

	return parent.Result, nil
}

// GetOperation retrieves an operation with its parent, children and
// owning discussion attached
func (s *operationService) GetOperation(ctx context.Context, id string) (*models.OperationDetail, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: operation id: %v", domain.ErrValidation, err)
	}

	op, err := s.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.OperationDetail{Operation: *op}

	if op.ParentID != nil {
		parent, err := s.operationRepo.GetByID(ctx, *op.ParentID)
		if err != nil {
			return nil, err
		}
		detail.Parent = parent
	}

	children, err := s.operationRepo.ListChildren(ctx, op.ID)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []models.Operation{}
	}
	detail.Children = children

	discussion, err := s.discussionRepo.GetByID(ctx, op.DiscussionID)
	if err != nil {
		return nil, err
	}
	detail.Discussion = discussion

	return detail, nil
}

// ListOperations lists a discussion's operations oldest-first. An absent
// discussion is NotFound rather than an empty list.
func (s *operationService) ListOperations(ctx context.Context, discussionID string) ([]models.Operation, error) {
	if err := validateID(discussionID); err != nil {
		return nil, fmt.Errorf("%w: discussion id: %v", domain.ErrValidation, err)
	}

	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}

	return s.operationRepo.ListByDiscussion(ctx, discussionID)
}

// ListChildren lists an operation's direct children oldest-first
func (s *operationService) ListChildren(ctx context.Context, operationID string) ([]models.Operation, error) {
	if err := validateID(operationID); err != nil {
		return nil, fmt.Errorf("%w: operation id: %v", domain.ErrValidation, err)
	}

	if _, err := s.operationRepo.GetByID(ctx, operationID); err != nil {
		return nil, err
	}

	return s.operationRepo.ListChildren(ctx, operationID)
}

// ListRoots lists a discussion's parentless operations oldest-first
func (s *operationService) ListRoots(ctx context.Context, discussionID string) ([]models.Operation, error) {
	if err := validateID(discussionID); err != nil {
		return nil, fmt.Errorf("%w: discussion id: %v", domain.ErrValidation, err)
	}

	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}

	return s.operationRepo.ListRoots(ctx, discussionID)
}

// CountOperations returns the number of operations in a discussion
func (s *operationService) CountOperations(ctx context.Context, discussionID string) (int, error) {
	if err := validateID(discussionID); err != nil {
		return 0, fmt.Errorf("%w: discussion id: %v", domain.ErrValidation, err)
	}

	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		return 0, err
	}

	return s.operationRepo.CountByDiscussion(ctx, discussionID)
}

func (s *operationService) validateCreateRequest(req *services.CreateOperationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.DiscussionID, validation.Required, validation.By(beUUID)),
		validation.Field(&req.ParentID, validation.By(beOptionalUUID)),
		validation.Field(&req.Kind, validation.Required),
		validation.Field(&req.Operand, validation.NotNil, validation.By(beFinite)),
		validation.Field(&req.AuthorID, validation.Required, validation.By(beUUID)),
	)
}

func beOptionalUUID(value interface{}) error {
	p, _ := value.(*string)
	if p == nil {
		return nil
	}
	return beUUID(*p)
}
