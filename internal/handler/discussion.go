package handler

import (
	"log/slog"
	"net/http"

	"mathboard/internal/domain/models"
	"mathboard/internal/domain/services"
	"mathboard/internal/httputil"
)

// DiscussionHandler handles discussion HTTP requests
type DiscussionHandler struct {
	discussionService services.DiscussionService
	logger            *slog.Logger
}

// NewDiscussionHandler creates a new discussion handler
func NewDiscussionHandler(discussionService services.DiscussionService, logger *slog.Logger) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
		logger:            logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *DiscussionHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createDiscussionBody struct {
	StartingNumber *float64 `json:"starting_number"`
}

// CreateDiscussion starts a new discussion
// POST /api/discussions
func (h *DiscussionHandler) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	var body createDiscussionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &services.CreateDiscussionRequest{
		AuthorID:       httputil.GetUserID(r),
		StartingNumber: body.StartingNumber,
	}

	discussion, err := h.discussionService.CreateDiscussion(r.Context(), req)
	if err != nil {
		// A taken starting number answers 409 with the existing
		// discussion as a hint
		handleCreateConflict(w, err, func(existingID string) (*models.Discussion, error) {
			return h.discussionService.GetDiscussion(r.Context(), existingID)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, discussion)
}

// GetDiscussion retrieves a discussion with its operations
// GET /api/discussions/{id}
func (h *DiscussionHandler) GetDiscussion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "discussion ID is required")
		return
	}

	discussion, err := h.discussionService.GetDiscussion(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, discussion)
}

// ListDiscussions retrieves all discussions, newest-first
// GET /api/discussions
func (h *DiscussionHandler) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	discussions, err := h.discussionService.ListDiscussions(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if discussions == nil {
		discussions = []models.Discussion{}
	}

	httputil.RespondJSON(w, http.StatusOK, discussions)
}

type updateDiscussionBody struct {
	StartingNumber *float64 `json:"starting_number"`
}

// UpdateDiscussion changes a discussion's starting number (author only)
// PATCH /api/discussions/{id}
func (h *DiscussionHandler) UpdateDiscussion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "discussion ID is required")
		return
	}

	var body updateDiscussionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &services.UpdateDiscussionRequest{
		RequestorID:    httputil.GetUserID(r),
		StartingNumber: body.StartingNumber,
	}

	discussion, err := h.discussionService.UpdateStartingNumber(r.Context(), id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, discussion)
}
