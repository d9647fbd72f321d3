package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
	"mathboard/internal/domain/services"
)

// discussionService implements the DiscussionService interface
type discussionService struct {
	discussionRepo repositories.DiscussionRepository
	operationRepo  repositories.OperationRepository
	logger         *slog.Logger
}

// NewDiscussionService creates a new discussion service
func NewDiscussionService(
	discussionRepo repositories.DiscussionRepository,
	operationRepo repositories.OperationRepository,
	logger *slog.Logger,
) services.DiscussionService {
	return &discussionService{
		discussionRepo: discussionRepo,
		operationRepo:  operationRepo,
		logger:         logger,
	}
}

// CreateDiscussion starts a new discussion on a globally unique starting
// number. Uniqueness is enforced by the store's constraint, not by a
// read-then-write check here.
func (s *discussionService) CreateDiscussion(ctx context.Context, req *services.CreateDiscussionRequest) (*models.Discussion, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	discussion := &models.Discussion{
		AuthorID:       req.AuthorID,
		StartingNumber: *req.StartingNumber,
		CreatedAt:      time.Now(),
	}

	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, err
	}

	s.logger.Info("discussion created",
		"id", discussion.ID,
		"starting_number", discussion.StartingNumber,
		"author_id", discussion.AuthorID,
	)

	discussion.Operations = []models.Operation{}
	return discussion, nil
}

// GetDiscussion retrieves a discussion with its operations oldest-first
func (s *discussionService) GetDiscussion(ctx context.Context, id string) (*models.Discussion, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: discussion id: %v", domain.ErrValidation, err)
	}

	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachOperations(ctx, discussion); err != nil {
		return nil, err
	}

	return discussion, nil
}

// GetDiscussionByStartingNumber retrieves the discussion anchored on a value
func (s *discussionService) GetDiscussionByStartingNumber(ctx context.Context, value float64) (*models.Discussion, error) {
	discussion, err := s.discussionRepo.GetByStartingNumber(ctx, value)
	if err != nil {
		return nil, err
	}

	if err := s.attachOperations(ctx, discussion); err != nil {
		return nil, err
	}

	return discussion, nil
}

// ListDiscussions retrieves all discussions newest-first, each with its
// operations oldest-first
func (s *discussionService) ListDiscussions(ctx context.Context) ([]models.Discussion, error) {
	discussions, err := s.discussionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range discussions {
		if err := s.attachOperations(ctx, &discussions[i]); err != nil {
			return nil, err
		}
	}

	return discussions, nil
}

// UpdateStartingNumber changes a discussion's starting number. The
// author-only check runs before the no-op comparison, so non-authors are
// rejected even for same-value updates; a same-value update by the author
// short-circuits the uniqueness re-validation.
func (s *discussionService) UpdateStartingNumber(ctx context.Context, id string, req *services.UpdateDiscussionRequest) (*models.Discussion, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: discussion id: %v", domain.ErrValidation, err)
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	discussion, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if discussion.AuthorID != req.RequestorID {
		return nil, fmt.Errorf("discussion %s belongs to another author: %w", id, domain.ErrForbidden)
	}

	if *req.StartingNumber == discussion.StartingNumber {
		// No-op update must not conflict with itself
		return discussion, nil
	}

	updated, err := s.discussionRepo.UpdateStartingNumber(ctx, id, *req.StartingNumber)
	if err != nil {
		return nil, err
	}

	s.logger.Info("discussion starting number updated",
		"id", updated.ID,
		"starting_number", updated.StartingNumber,
		"requestor_id", req.RequestorID,
	)

	return updated, nil
}

func (s *discussionService) attachOperations(ctx context.Context, discussion *models.Discussion) error {
	ops, err := s.operationRepo.ListByDiscussion(ctx, discussion.ID)
	if err != nil {
		return err
	}
	if ops == nil {
		ops = []models.Operation{}
	}
	discussion.Operations = ops
	return nil
}

func (s *discussionService) validateCreateRequest(req *services.CreateDiscussionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required, validation.By(beUUID)),
		validation.Field(&req.StartingNumber, validation.NotNil, validation.By(beFinite)),
	)
}

func (s *discussionService) validateUpdateRequest(req *services.UpdateDiscussionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.RequestorID, validation.Required, validation.By(beUUID)),
		validation.Field(&req.StartingNumber, validation.NotNil, validation.By(beFinite)),
	)
}

// validateID rejects malformed identifiers before they reach the store
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("must be a valid UUID")
	}
	return nil
}

func beUUID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		// Required/NotNil handles absence
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("must be a valid UUID")
	}
	return nil
}

// beFinite rejects NaN and infinities, which have no stable meaning as a
// starting number or operand
func beFinite(value interface{}) error {
	var f float64
	switch v := value.(type) {
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	case float64:
		f = v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("must be a finite number")
	}
	return nil
}
