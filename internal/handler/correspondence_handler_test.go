package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
	"devonxona/internal/handler"
	"devonxona/internal/middleware"
	"devonxona/internal/service"
	"devonxona/internal/workflow"
	"devonxona/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCorrespondenceHandler() (*handler.CorrespondenceHandler, *mocks.MockCorrespondenceService) {
	mockSvc := new(mocks.MockCorrespondenceService)
	h := handler.NewCorrespondenceHandler(mockSvc)
	return h, mockSvc
}

func setActor(c *gin.Context, userID uuid.UUID, name string, role domain.UserRole) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyFullName, name)
	c.Set(middleware.ContextKeyRole, string(role))
}

func jsonRequest(c *gin.Context, method, path string, payload interface{}) {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	c.Request, _ = http.NewRequest(method, path, &body)
	c.Request.Header.Set("Content-Type", "application/json")
}

// --- Create ---

func TestCorrespondenceHandler_Create_Incoming(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	userID := uuid.New()

	expected := &domain.Correspondence{
		ID:    uuid.New(),
		Type:  domain.TypeKiruvchi,
		Stage: domain.StageAssignment,
	}
	mockSvc.On("CreateIncoming", mock.Anything, mock.MatchedBy(func(input *service.CreateCorrespondenceInput) bool {
		return input.Actor.ID == userID && input.Title == "Kiruvchi xat"
	})).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, userID, "Resepshn", domain.RoleResepshn)
	jsonRequest(c, http.MethodPost, "/api/v1/correspondences", map[string]string{
		"type":      "Kiruvchi",
		"title":     "Kiruvchi xat",
		"content":   "matn",
		"source":    "Markaziy Bank",
		"kartoteka": "Markaziy Bank",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
	mockSvc.AssertNotCalled(t, "CreateOutgoing")
}

func TestCorrespondenceHandler_Create_UnknownType(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Resepshn", domain.RoleResepshn)
	jsonRequest(c, http.MethodPost, "/api/v1/correspondences", map[string]string{
		"type":      "Boshqa",
		"title":     "Xat",
		"content":   "matn",
		"kartoteka": "Markaziy Bank",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateIncoming")
	mockSvc.AssertNotCalled(t, "CreateOutgoing")
}

// --- Workflow transitions ---

func TestCorrespondenceHandler_AssignExecutor_Success(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()
	executorID := uuid.New()

	mockSvc.On("AssignExecutor", mock.Anything, mock.MatchedBy(func(input *service.AssignExecutorInput) bool {
		return input.CorrespondenceID == corrID && input.ExecutorID == executorID
	})).Return(&domain.Correspondence{ID: corrID, Stage: domain.StageExecution}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Boshqaruv", domain.RoleBoshqaruv)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/api/v1/correspondences/"+corrID.String()+"/assign-executor",
		map[string]string{"executor_id": executorID.String()})

	h.AssignExecutor(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCorrespondenceHandler_AssignExecutor_InvalidStateMapsTo409(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()

	mockSvc.On("AssignExecutor", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidState)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Boshqaruv", domain.RoleBoshqaruv)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/assign-executor", map[string]string{"executor_id": uuid.New().String()})

	h.AssignExecutor(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)
}

func TestCorrespondenceHandler_RejectReview_ForwardsComment(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()
	reviewerID := uuid.New()

	mockSvc.On("RejectReview", mock.Anything, mock.MatchedBy(func(input *service.RejectReviewInput) bool {
		return input.CorrespondenceID == corrID &&
			input.Actor.ID == reviewerID &&
			input.Comment == "3-band aniqlashtirilsin"
	})).Return(&domain.Correspondence{ID: corrID, Stage: domain.StageRevisionRequested}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, reviewerID, "Kelishuvchi", domain.RoleTarmoq)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/reject", map[string]string{"comment": "3-band aniqlashtirilsin"})

	h.RejectReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCorrespondenceHandler_RejectReview_EmptyCommentMapsTo400(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()

	mockSvc.On("RejectReview", mock.Anything, mock.Anything).Return(nil, domain.ErrValidation)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Kelishuvchi", domain.RoleTarmoq)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/reject", map[string]string{"comment": ""})

	h.RejectReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorrespondenceHandler_ApproveReview_ReturnsOutcome(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()

	mockSvc.On("ApproveReview", mock.Anything, mock.Anything).Return(&service.ReviewResult{
		Correspondence: &domain.Correspondence{ID: corrID, Stage: domain.StageFinalReview},
		Outcome:        workflow.ReviewPending,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Kelishuvchi", domain.RoleTarmoq)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/approve", nil)

	h.ApproveReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"PENDING"`)
}

func TestCorrespondenceHandler_Dispatch_StageConflictMapsTo409(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()

	mockSvc.On("DispatchDocument", mock.Anything, mock.Anything).Return(nil, domain.ErrStageConflict)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Apparat", domain.RoleBankApparati)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodPost, "/dispatch", nil)

	h.Dispatch(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "STAGE_CONFLICT", resp.Error.Code)
}

func TestCorrespondenceHandler_Transition_InvalidID(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Boshqaruv", domain.RoleBoshqaruv)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	jsonRequest(c, http.MethodPost, "/sign", nil)

	h.Sign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "SignDocument")
}

func TestCorrespondenceHandler_Transition_MissingAuthContext(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	jsonRequest(c, http.MethodPost, "/sign", nil)

	h.Sign(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "SignDocument")
}

// --- AllowedActions ---

func TestCorrespondenceHandler_AllowedActions(t *testing.T) {
	h, mockSvc := newCorrespondenceHandler()
	corrID := uuid.New()

	mockSvc.On("AllowedActions", mock.Anything, corrID, mock.Anything).
		Return([]workflow.Action{workflow.ActionSign}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setActor(c, uuid.New(), "Boshqaruv", domain.RoleBoshqaruv)
	c.Params = gin.Params{{Key: "id", Value: corrID.String()}}
	jsonRequest(c, http.MethodGet, "/actions", nil)

	h.AllowedActions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sign"`)
}
