package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/services"
)

// Stub services with function fields, so each test controls exactly one
// behavior without a repository behind it.

type stubDiscussionService struct {
	create         func(ctx context.Context, req *services.CreateDiscussionRequest) (*models.Discussion, error)
	get            func(ctx context.Context, id string) (*models.Discussion, error)
	getByNumber    func(ctx context.Context, value float64) (*models.Discussion, error)
	list           func(ctx context.Context) ([]models.Discussion, error)
	updateStarting func(ctx context.Context, id string, req *services.UpdateDiscussionRequest) (*models.Discussion, error)
}

func (s *stubDiscussionService) CreateDiscussion(ctx context.Context, req *services.CreateDiscussionRequest) (*models.Discussion, error) {
	return s.create(ctx, req)
}

func (s *stubDiscussionService) GetDiscussion(ctx context.Context, id string) (*models.Discussion, error) {
	return s.get(ctx, id)
}

func (s *stubDiscussionService) GetDiscussionByStartingNumber(ctx context.Context, value float64) (*models.Discussion, error) {
	return s.getByNumber(ctx, value)
}

func (s *stubDiscussionService) ListDiscussions(ctx context.Context) ([]models.Discussion, error) {
	return s.list(ctx)
}

func (s *stubDiscussionService) UpdateStartingNumber(ctx context.Context, id string, req *services.UpdateDiscussionRequest) (*models.Discussion, error) {
	return s.updateStarting(ctx, id, req)
}

type stubChainService struct {
	resolve func(ctx context.Context, operationID string) ([]models.Operation, error)
}

func (s *stubChainService) ResolveChain(ctx context.Context, operationID string) ([]models.Operation, error) {
	return s.resolve(ctx, operationID)
}

type stubOperationService struct {
	create func(ctx context.Context, req *services.CreateOperationRequest) (*models.Operation, error)
}

func (s *stubOperationService) CreateOperation(ctx context.Context, req *services.CreateOperationRequest) (*models.Operation, error) {
	return s.create(ctx, req)
}

func (s *stubOperationService) GetOperation(ctx context.Context, id string) (*models.OperationDetail, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOperationService) ListOperations(ctx context.Context, discussionID string) ([]models.Operation, error) {
	return nil, nil
}

func (s *stubOperationService) ListChildren(ctx context.Context, operationID string) ([]models.Operation, error) {
	return nil, nil
}

func (s *stubOperationService) ListRoots(ctx context.Context, discussionID string) ([]models.Operation, error) {
	return nil, nil
}

func (s *stubOperationService) CountOperations(ctx context.Context, discussionID string) (int, error) {
	return 0, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateDiscussionConflictReturnsExistingAsHint(t *testing.T) {
	existing := &models.Discussion{ID: "11111111-1111-1111-1111-111111111111", StartingNumber: 5}

	svc := &stubDiscussionService{
		create: func(_ context.Context, _ *services.CreateDiscussionRequest) (*models.Discussion, error) {
			return nil, &domain.ConflictError{
				Message:      "starting number 5 already taken",
				ResourceType: "discussion",
				ResourceID:   existing.ID,
			}
		},
		get: func(_ context.Context, id string) (*models.Discussion, error) {
			if id != existing.ID {
				return nil, domain.ErrNotFound
			}
			return existing, nil
		},
	}
	h := NewDiscussionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/discussions", strings.NewReader(`{"starting_number": 5}`))
	rec := httptest.NewRecorder()
	h.CreateDiscussion(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var body models.Discussion
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a discussion: %v", err)
	}
	if body.ID != existing.ID {
		t.Errorf("conflict body ID = %s, want existing discussion %s", body.ID, existing.ID)
	}
}

func TestCreateDiscussionMalformedJSON(t *testing.T) {
	svc := &stubDiscussionService{
		create: func(_ context.Context, _ *services.CreateDiscussionRequest) (*models.Discussion, error) {
			t.Fatal("service must not be called for malformed JSON")
			return nil, nil
		},
	}
	h := NewDiscussionHandler(svc, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{name: "non-numeric starting number", body: `{"starting_number": "forty-two"}`},
		{name: "truncated", body: `{"starting_number": `},
		{name: "unknown field", body: `{"startingNum": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/discussions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateDiscussion(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: bad input", domain.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "invalid operation", err: fmt.Errorf("division by zero: %w", domain.ErrInvalidOperation), wantStatus: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("discussion x: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "forbidden", err: fmt.Errorf("nope: %w", domain.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "invalid reference", err: fmt.Errorf("wrong tree: %w", domain.ErrInvalidReference), wantStatus: http.StatusUnprocessableEntity},
		{name: "conflict", err: &domain.ConflictError{Message: "taken"}, wantStatus: http.StatusConflict},
		{name: "integrity", err: fmt.Errorf("corrupt chain: %w", domain.ErrIntegrity), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("handleError(%v) status = %d, want %d", tt.err, rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %s, want application/problem+json", ct)
			}
		})
	}
}

func TestGetChainRoutesErrors(t *testing.T) {
	chains := &stubChainService{
		resolve: func(_ context.Context, operationID string) ([]models.Operation, error) {
			return nil, fmt.Errorf("operation %s: %w", operationID, domain.ErrNotFound)
		},
	}
	h := NewOperationHandler(&stubOperationService{}, chains, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/operations/{id}/chain", h.GetChain)

	req := httptest.NewRequest(http.MethodGet, "/api/operations/22222222-2222-2222-2222-222222222222/chain", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
