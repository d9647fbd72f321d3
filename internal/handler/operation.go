package handler

import (
	"log/slog"
	"net/http"

	"mathboard/internal/domain/models"
	"mathboard/internal/domain/services"
	"mathboard/internal/httputil"
)

// OperationHandler handles computation-tree node HTTP requests
type OperationHandler struct {
	operationService services.OperationService
	chainService     services.ChainService
	logger           *slog.Logger
}

// NewOperationHandler creates a new operation handler
func NewOperationHandler(
	operationService services.OperationService,
	chainService services.ChainService,
	logger *slog.Logger,
) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
		chainService:     chainService,
		logger:           logger,
	}
}

type createOperationBody struct {
	DiscussionID string   `json:"discussion_id"`
	ParentID     *string  `json:"parent_id,omitempty"`
	Kind         string   `json:"operation_type"`
	Operand      *float64 `json:"operand"`
}

// CreateOperation attaches a new node to a discussion's tree
// POST /api/operations
func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	var body createOperationBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &services.CreateOperationRequest{
		DiscussionID: body.DiscussionID,
		ParentID:     body.ParentID,
		Kind:         body.Kind,
		Operand:      body.Operand,
		AuthorID:     httputil.GetUserID(r),
	}

	op, err := h.operationService.CreateOperation(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, op)
}

// GetOperation retrieves a node with parent, children and discussion
// GET /api/operations/{id}
func (h *OperationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "operation ID is required")
		return
	}

	detail, err := h.operationService.GetOperation(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// ListByDiscussion lists a discussion's operations oldest-first. With
// ?roots=true only parentless operations are returned.
// GET /api/discussions/{id}/operations
func (h *OperationHandler) ListByDiscussion(w http.ResponseWriter, r *http.Request) {
	discussionID := r.PathValue("id")
	if discussionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "discussion ID is required")
		return
	}

	var (
		ops []models.Operation
		err error
	)
	if r.URL.Query().Get("roots") == "true" {
		ops, err = h.operationService.ListRoots(r.Context(), discussionID)
	} else {
		ops, err = h.operationService.ListOperations(r.Context(), discussionID)
	}
	if err != nil {
		handleError(w, err)
		return
	}
	if ops == nil {
		ops = []models.Operation{}
	}

	httputil.RespondJSON(w, http.StatusOK, ops)
}

// CountByDiscussion returns a discussion's operation count
// GET /api/discussions/{id}/operations/count
func (h *OperationHandler) CountByDiscussion(w http.ResponseWriter, r *http.Request) {
	discussionID := r.PathValue("id")
	if discussionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "discussion ID is required")
		return
	}

	count, err := h.operationService.CountOperations(r.Context(), discussionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// ListChildren lists a node's direct children oldest-first
// GET /api/operations/{id}/children
func (h *OperationHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "operation ID is required")
		return
	}

	children, err := h.operationService.ListChildren(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if children == nil {
		children = []models.Operation{}
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}

// GetChain returns the root-to-leaf path of operations ending at a node
// GET /api/operations/{id}/chain
func (h *OperationHandler) GetChain(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "operation ID is required")
		return
	}

	chain, err := h.chainService.ResolveChain(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chain)
}
