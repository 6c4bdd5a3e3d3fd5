package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devonxona/internal/domain"
	"devonxona/internal/port"
	"devonxona/internal/service"
)

// CorrespondenceHandler handles correspondence and workflow endpoints.
type CorrespondenceHandler struct {
	corrService service.CorrespondenceService
}

// NewCorrespondenceHandler creates a new CorrespondenceHandler.
func NewCorrespondenceHandler(corrService service.CorrespondenceService) *CorrespondenceHandler {
	return &CorrespondenceHandler{corrService: corrService}
}

// Create handles POST /api/v1/correspondences
// @Summary Register a correspondence
// @Description Register an incoming or outgoing correspondence; incoming starts in ASSIGNMENT, outgoing in DRAFTING
// @Tags correspondences
// @Accept json
// @Produce json
// @Param request body CreateCorrespondenceRequest true "Correspondence details"
// @Success 201 {object} Response{data=domain.Correspondence} "Correspondence registered"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Role may not register this type"
// @Security BearerAuth
// @Router /correspondences [post]
func (h *CorrespondenceHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req struct {
		Type      domain.CorrespondenceType `json:"type" binding:"required"`
		Title     string                    `json:"title" binding:"required"`
		Content   string                    `json:"content" binding:"required"`
		Source    string                    `json:"source"`
		Kartoteka domain.Kartoteka          `json:"kartoteka" binding:"required"`
		Deadline  *time.Time                `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "type, title, content, and kartoteka are required")
		return
	}
	if !domain.ValidCorrespondenceTypes[req.Type] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "type must be 'Kiruvchi' or 'Chiquvchi'")
		return
	}

	input := &service.CreateCorrespondenceInput{
		Actor:     actor,
		Title:     req.Title,
		Content:   req.Content,
		Source:    req.Source,
		Kartoteka: req.Kartoteka,
		Deadline:  req.Deadline,
	}

	var (
		corr *domain.Correspondence
		err  error
	)
	if req.Type == domain.TypeKiruvchi {
		corr, err = h.corrService.CreateIncoming(c.Request.Context(), input)
	} else {
		corr, err = h.corrService.CreateOutgoing(c.Request.Context(), input)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, corr)
}

// GetByID handles GET /api/v1/correspondences/:id
// @Summary Get correspondence by ID
// @Description Get correspondence details including current-round reviewers
// @Tags correspondences
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=domain.Correspondence} "Correspondence details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Correspondence not found"
// @Security BearerAuth
// @Router /correspondences/{id} [get]
func (h *CorrespondenceHandler) GetByID(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	corr, err := h.corrService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, corr)
}

// List handles GET /api/v1/correspondences
// @Summary List correspondences
// @Description List correspondences with type, kartoteka, stage, and search filters
// @Tags correspondences
// @Produce json
// @Param type query string false "Filter by type (Kiruvchi or Chiquvchi)"
// @Param kartoteka query string false "Filter by kartoteka"
// @Param stage query string false "Filter by workflow stage"
// @Param search query string false "Match against title, content, or source"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Correspondence} "Correspondence list"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /correspondences [get]
func (h *CorrespondenceHandler) List(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}

	filter := port.CorrespondenceFilter{
		Type:      domain.CorrespondenceType(c.Query("type")),
		Kartoteka: domain.Kartoteka(c.Query("kartoteka")),
		Stage:     domain.Stage(c.Query("stage")),
		Search:    c.Query("search"),
	}
	filter.Offset, filter.Limit = parsePagination(c)

	items, total, err := h.corrService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// AllowedActions handles GET /api/v1/correspondences/:id/actions
// @Summary List actions the current user may perform
// @Description Evaluates workflow permission predicates for UI gating; the server re-checks on every transition
// @Tags correspondences
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=[]string} "Allowed action names"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Correspondence not found"
// @Security BearerAuth
// @Router /correspondences/{id}/actions [get]
func (h *CorrespondenceHandler) AllowedActions(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actions, err := h.corrService.AllowedActions(c.Request.Context(), id, actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, actions)
}

// AuditTrail handles GET /api/v1/correspondences/:id/audit
// @Summary Get the audit trail
// @Description Returns the append-only transition history in chronological order
// @Tags correspondences
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.AuditLogEntry} "Audit entries"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Correspondence not found"
// @Security BearerAuth
// @Router /correspondences/{id}/audit [get]
func (h *CorrespondenceHandler) AuditTrail(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	entries, total, err := h.corrService.AuditTrail(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// AssignExecutor handles POST /api/v1/correspondences/:id/assign-executor
// @Summary Assign the main executor
// @Description Management assigns a department head; moves ASSIGNMENT to EXECUTION
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Param request body AssignExecutorRequest true "Executor user ID"
// @Success 200 {object} Response{data=domain.Correspondence} "Executor assigned"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/assign-executor [post]
func (h *CorrespondenceHandler) AssignExecutor(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ExecutorID uuid.UUID `json:"executor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "executor_id is required")
		return
	}

	corr, err := h.corrService.AssignExecutor(c.Request.Context(), &service.AssignExecutorInput{
		CorrespondenceID: id,
		Actor:            actor,
		ExecutorID:       req.ExecutorID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, corr)
}

// AssignInternal handles POST /api/v1/correspondences/:id/assign-internal
// @Summary Delegate to a department employee
// @Description The main executor delegates within the department; stage stays EXECUTION
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Param request body AssignInternalRequest true "Employee user ID"
// @Success 200 {object} Response{data=domain.Correspondence} "Employee assigned"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/assign-internal [post]
func (h *CorrespondenceHandler) AssignInternal(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "employee_id is required")
		return
	}

	corr, err := h.corrService.AssignInternalEmployee(c.Request.Context(), &service.AssignInternalInput{
		CorrespondenceID: id,
		Actor:            actor,
		EmployeeID:       req.EmployeeID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, corr)
}

// StartDrafting handles POST /api/v1/correspondences/:id/start-drafting
// @Summary Start drafting
// @Description The executor or internal assignee opens the draft; moves EXECUTION to DRAFTING
// @Tags workflow
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=domain.Correspondence} "Drafting started"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/start-drafting [post]
func (h *CorrespondenceHandler) StartDrafting(c *gin.Context) {
	h.transition(c, h.corrService.StartDrafting)
}

// SubmitForReview handles POST /api/v1/correspondences/:id/submit-review
// @Summary Submit the draft for review
// @Description Opens a new review round with the required reviewer set; moves DRAFTING or REVISION_REQUESTED to FINAL_REVIEW
// @Tags workflow
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=domain.Correspondence} "Submitted for review"
// @Failure 400 {object} ErrorResponseBody "No reviewers configured"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/submit-review [post]
func (h *CorrespondenceHandler) SubmitForReview(c *gin.Context) {
	h.transition(c, h.corrService.SubmitForReview)
}

// ApproveReview handles POST /api/v1/correspondences/:id/approve
// @Summary Approve the review
// @Description Records the reviewer's approval; when every reviewer has approved, moves FINAL_REVIEW to SIGNATURE
// @Tags workflow
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=service.ReviewResult} "Approval recorded with round outcome"
// @Failure 403 {object} ErrorResponseBody "Not a pending reviewer of the current round"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/approve [post]
func (h *CorrespondenceHandler) ApproveReview(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.corrService.ApproveReview(c.Request.Context(), &service.TransitionInput{
		CorrespondenceID: id,
		Actor:            actor,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// RejectReview handles POST /api/v1/correspondences/:id/reject
// @Summary Reject the review
// @Description Records the rejection with a mandatory comment; moves FINAL_REVIEW to REVISION_REQUESTED immediately
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Param request body RejectReviewRequest true "Rejection comment"
// @Success 200 {object} Response{data=domain.Correspondence} "Rejection recorded"
// @Failure 400 {object} ErrorResponseBody "Missing rejection comment"
// @Failure 403 {object} ErrorResponseBody "Not a pending reviewer of the current round"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/reject [post]
func (h *CorrespondenceHandler) RejectReview(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "comment is required")
		return
	}

	corr, err := h.corrService.RejectReview(c.Request.Context(), &service.RejectReviewInput{
		CorrespondenceID: id,
		Actor:            actor,
		Comment:          req.Comment,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, corr)
}

// Sign handles POST /api/v1/correspondences/:id/sign
// @Summary Sign the document
// @Description Management signs the agreed document; moves SIGNATURE to DISPATCH
// @Tags workflow
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=domain.Correspondence} "Document signed"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/sign [post]
func (h *CorrespondenceHandler) Sign(c *gin.Context) {
	h.transition(c, h.corrService.SignDocument)
}

// Dispatch handles POST /api/v1/correspondences/:id/dispatch
// @Summary Dispatch the document
// @Description The dispatch office sends the signed document; moves DISPATCH to the terminal ARCHIVED stage
// @Tags workflow
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=domain.Correspondence} "Document dispatched and archived"
// @Failure 403 {object} ErrorResponseBody "Not permitted for this user"
// @Failure 409 {object} ErrorResponseBody "Wrong stage or concurrent transition"
// @Security BearerAuth
// @Router /correspondences/{id}/dispatch [post]
func (h *CorrespondenceHandler) Dispatch(c *gin.Context) {
	h.transition(c, h.corrService.DispatchDocument)
}

// transition runs a body-less workflow operation.
func (h *CorrespondenceHandler) transition(
	c *gin.Context,
	op func(context.Context, *service.TransitionInput) (*domain.Correspondence, error),
) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	corr, err := op(c.Request.Context(), &service.TransitionInput{
		CorrespondenceID: id,
		Actor:            actor,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, corr)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
