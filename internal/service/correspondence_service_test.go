package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
	"devonxona/internal/port"
	"devonxona/internal/service"
	"devonxona/internal/workflow"
	"devonxona/mocks"
)

func setupCorrespondenceService() (
	service.CorrespondenceService,
	*mocks.MockCorrespondenceRepo,
	*mocks.MockUserRepo,
	*mocks.MockReviewerDirectory,
	*mocks.MockNotifier,
) {
	corrRepo := new(mocks.MockCorrespondenceRepo)
	userRepo := new(mocks.MockUserRepo)
	auditRepo := new(mocks.MockAuditRepo)
	directory := new(mocks.MockReviewerDirectory)
	notifier := new(mocks.MockNotifier)
	svc := service.NewCorrespondenceService(corrRepo, userRepo, auditRepo, directory, notifier)
	return svc, corrRepo, userRepo, directory, notifier
}

func actorWithRole(role domain.UserRole) service.Actor {
	return service.Actor{ID: uuid.New(), Name: "Test User", Role: role}
}

func testCorrespondence(stage domain.Stage) *domain.Correspondence {
	return &domain.Correspondence{
		ID:        uuid.New(),
		Type:      domain.TypeKiruvchi,
		Title:     "Test hujjat",
		Content:   "matn",
		Source:    "Markaziy Bank",
		Stage:     stage,
		Status:    domain.StatusForStage(stage),
		Kartoteka: domain.KartotekaMarkaziyBank,
		AuthorID:  uuid.New(),
	}
}

// --- Create ---

func TestCorrespondenceService_CreateIncoming_StartsInAssignment(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleResepshn)

	userRepo.On("GetByID", mock.Anything, actor.ID).Return(&domain.User{ID: actor.ID}, nil)
	corrRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Correspondence"), mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	c, err := svc.CreateIncoming(context.Background(), &service.CreateCorrespondenceInput{
		Actor:     actor,
		Title:     "Kiruvchi xat",
		Content:   "matn",
		Source:    "Markaziy Bank",
		Kartoteka: domain.KartotekaMarkaziyBank,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageAssignment, c.Stage)
	assert.Equal(t, domain.StatusYangi, c.Status)
	assert.Equal(t, domain.TypeKiruvchi, c.Type)
	assert.Equal(t, 0, c.ReviewRound)

	audit := corrRepo.Calls[0].Arguments.Get(2).(*domain.AuditLogEntry)
	assert.Equal(t, domain.AuditCreated, audit.Action)
	corrRepo.AssertExpectations(t)
}

func TestCorrespondenceService_CreateIncoming_RequiresSource(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()

	_, err := svc.CreateIncoming(context.Background(), &service.CreateCorrespondenceInput{
		Actor:     actorWithRole(domain.RoleResepshn),
		Title:     "Kiruvchi xat",
		Content:   "matn",
		Source:    "   ",
		Kartoteka: domain.KartotekaMarkaziyBank,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "Create")
}

func TestCorrespondenceService_CreateIncoming_RoleGated(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()

	_, err := svc.CreateIncoming(context.Background(), &service.CreateCorrespondenceInput{
		Actor:     actorWithRole(domain.RoleReviewer),
		Title:     "Kiruvchi xat",
		Content:   "matn",
		Source:    "Markaziy Bank",
		Kartoteka: domain.KartotekaMarkaziyBank,
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	corrRepo.AssertNotCalled(t, "Create")
}

func TestCorrespondenceService_CreateOutgoing_StartsInDrafting(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleTarmoq)

	userRepo.On("GetByID", mock.Anything, actor.ID).Return(&domain.User{ID: actor.ID, Department: "Yuridik boshqarma"}, nil)
	corrRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Correspondence"), mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	c, err := svc.CreateOutgoing(context.Background(), &service.CreateCorrespondenceInput{
		Actor:     actor,
		Title:     "Chiquvchi xat",
		Content:   "matn",
		Kartoteka: domain.KartotekaXizmat,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageDrafting, c.Stage)
	assert.Equal(t, domain.TypeChiquvchi, c.Type)
	assert.Equal(t, "Yuridik boshqarma", c.Department)
}

func TestCorrespondenceService_Create_InvalidKartoteka(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()

	_, err := svc.CreateOutgoing(context.Background(), &service.CreateCorrespondenceInput{
		Actor:     actorWithRole(domain.RoleTarmoq),
		Title:     "Chiquvchi xat",
		Content:   "matn",
		Kartoteka: domain.Kartoteka("Nomalum"),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "Create")
}

// --- AssignExecutor ---

func TestCorrespondenceService_AssignExecutor_MovesToExecution(t *testing.T) {
	svc, corrRepo, userRepo, _, notifier := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleBoshqaruv)
	corr := testCorrespondence(domain.StageAssignment)
	executor := &domain.User{ID: uuid.New(), FullName: "Bo'lim boshlig'i", Role: domain.RoleTarmoq, Department: "Yuridik boshqarma"}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	userRepo.On("GetByID", mock.Anything, executor.ID).Return(executor, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)
	notifier.On("NotifyExecutorAssigned", mock.Anything, executor, mock.Anything).Return(nil)

	result, err := svc.AssignExecutor(context.Background(), &service.AssignExecutorInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
		ExecutorID:       executor.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageExecution, result.Stage)
	assert.Equal(t, executor.ID, *result.MainExecutorID)
	assert.Equal(t, "Yuridik boshqarma", result.Department)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.StageAssignment, commit.FromStage)
	assert.Equal(t, domain.AuditExecutorAssigned, commit.Audit.Action)
	notifier.AssertExpectations(t)
}

func TestCorrespondenceService_AssignExecutor_WrongStage(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageDrafting)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.AssignExecutor(context.Background(), &service.AssignExecutorInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBoshqaruv),
		ExecutorID:       uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

func TestCorrespondenceService_AssignExecutor_WrongRole(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageAssignment)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.AssignExecutor(context.Background(), &service.AssignExecutorInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleTarmoq),
		ExecutorID:       uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

func TestCorrespondenceService_AssignExecutor_ExecutorMustBeDepartmentHead(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageAssignment)
	employee := &domain.User{ID: uuid.New(), Role: domain.RoleReviewer}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	userRepo.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)

	_, err := svc.AssignExecutor(context.Background(), &service.AssignExecutorInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBoshqaruv),
		ExecutorID:       employee.ID,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

func TestCorrespondenceService_AssignExecutor_StageConflictSurfaces(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageAssignment)
	executor := &domain.User{ID: uuid.New(), Role: domain.RoleTarmoq}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	userRepo.On("GetByID", mock.Anything, executor.ID).Return(executor, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.Anything).Return(domain.ErrStageConflict)

	_, err := svc.AssignExecutor(context.Background(), &service.AssignExecutorInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBoshqaruv),
		ExecutorID:       executor.ID,
	})

	assert.ErrorIs(t, err, domain.ErrStageConflict)
}

// --- AssignInternalEmployee ---

func TestCorrespondenceService_AssignInternal_StageUnchanged(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleTarmoq)
	corr := testCorrespondence(domain.StageExecution)
	corr.MainExecutorID = &actor.ID
	employee := &domain.User{ID: uuid.New(), FullName: "Xodim", Role: domain.RoleReviewer, Department: "Yuridik boshqarma"}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	userRepo.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	userRepo.On("GetByID", mock.Anything, actor.ID).Return(&domain.User{ID: actor.ID, Department: "Yuridik boshqarma"}, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)

	result, err := svc.AssignInternalEmployee(context.Background(), &service.AssignInternalInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
		EmployeeID:       employee.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageExecution, result.Stage)
	assert.Equal(t, employee.ID, *result.InternalAssigneeID)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.StageExecution, commit.FromStage)
	assert.Equal(t, domain.AuditInternalAssigned, commit.Audit.Action)
}

func TestCorrespondenceService_AssignInternal_DepartmentMismatch(t *testing.T) {
	svc, corrRepo, userRepo, _, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleTarmoq)
	corr := testCorrespondence(domain.StageExecution)
	corr.MainExecutorID = &actor.ID
	employee := &domain.User{ID: uuid.New(), Department: "Moliyaviy monitoring"}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	userRepo.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	userRepo.On("GetByID", mock.Anything, actor.ID).Return(&domain.User{ID: actor.ID, Department: "Yuridik boshqarma"}, nil)

	_, err := svc.AssignInternalEmployee(context.Background(), &service.AssignInternalInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
		EmployeeID:       employee.ID,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

func TestCorrespondenceService_AssignInternal_NotMainExecutor(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageExecution)
	other := uuid.New()
	corr.MainExecutorID = &other

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.AssignInternalEmployee(context.Background(), &service.AssignInternalInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleTarmoq),
		EmployeeID:       uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

// --- StartDrafting ---

func TestCorrespondenceService_StartDrafting_ByInternalAssignee(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleReviewer)
	corr := testCorrespondence(domain.StageExecution)
	executorID := uuid.New()
	corr.MainExecutorID = &executorID
	corr.InternalAssigneeID = &actor.ID

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)

	result, err := svc.StartDrafting(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageDrafting, result.Stage)
	assert.Equal(t, domain.StatusIjroda, result.Status)
}

// --- SubmitForReview ---

func TestCorrespondenceService_SubmitForReview_OpensNewRound(t *testing.T) {
	svc, corrRepo, _, directory, notifier := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleTarmoq)
	corr := testCorrespondence(domain.StageDrafting)
	corr.MainExecutorID = &actor.ID
	corr.ReviewRound = 1

	reviewers := []domain.User{
		{ID: uuid.New(), FullName: "Yuridik boshlig'i", Department: "Yuridik boshqarma"},
		{ID: uuid.New(), FullName: "Monitoring boshlig'i", Department: "Moliyaviy monitoring"},
	}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	directory.On("RequiredReviewers", mock.Anything, corr).Return(reviewers, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)
	notifier.On("NotifyReviewRequested", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SubmitForReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageFinalReview, result.Stage)
	assert.Equal(t, 2, result.ReviewRound)
	assert.Len(t, result.Reviewers, 2)
	for _, rv := range result.Reviewers {
		assert.Equal(t, domain.ReviewerPending, rv.Status)
		assert.Equal(t, 2, rv.Round)
	}

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.StageDrafting, commit.FromStage)
	assert.Equal(t, domain.AuditSubmittedForReview, commit.Audit.Action)
	assert.Len(t, commit.NewReviewers, 2)
}

func TestCorrespondenceService_SubmitForReview_FromRevisionRequested(t *testing.T) {
	svc, corrRepo, _, directory, notifier := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageRevisionRequested)
	actor := service.Actor{ID: corr.AuthorID, Name: "Muallif", Role: domain.RoleTarmoq}
	corr.ReviewRound = 1

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	directory.On("RequiredReviewers", mock.Anything, corr).Return([]domain.User{{ID: uuid.New()}}, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyReviewRequested", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SubmitForReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageFinalReview, result.Stage)
	assert.Equal(t, 2, result.ReviewRound)
}

func TestCorrespondenceService_SubmitForReview_EmptyReviewerSet(t *testing.T) {
	svc, corrRepo, _, directory, _ := setupCorrespondenceService()
	actor := actorWithRole(domain.RoleTarmoq)
	corr := testCorrespondence(domain.StageDrafting)
	corr.MainExecutorID = &actor.ID

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	directory.On("RequiredReviewers", mock.Anything, corr).Return([]domain.User{}, nil)

	_, err := svc.SubmitForReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actor,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

// --- ApproveReview ---

func reviewCorrespondence(reviewerIDs ...uuid.UUID) *domain.Correspondence {
	corr := testCorrespondence(domain.StageFinalReview)
	corr.ReviewRound = 1
	for _, id := range reviewerIDs {
		corr.Reviewers = append(corr.Reviewers, domain.Reviewer{
			ID:               uuid.New(),
			CorrespondenceID: corr.ID,
			UserID:           id,
			Status:           domain.ReviewerPending,
			Round:            1,
		})
	}
	return corr
}

func TestCorrespondenceService_ApproveReview_PartialKeepsStage(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	reviewerA := actorWithRole(domain.RoleTarmoq)
	reviewerB := uuid.New()
	corr := reviewCorrespondence(reviewerA.ID, reviewerB)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)

	result, err := svc.ApproveReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            reviewerA,
	})

	assert.NoError(t, err)
	assert.Equal(t, workflow.ReviewPending, result.Outcome)
	assert.Equal(t, domain.StageFinalReview, result.Correspondence.Stage)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.StageFinalReview, commit.FromStage)
	assert.Equal(t, domain.ReviewerApproved, commit.ReviewerUpdate.Status)
	assert.Equal(t, domain.AuditReviewApproved, commit.Audit.Action)
}

func TestCorrespondenceService_ApproveReview_LastApprovalAdvances(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	reviewerA := uuid.New()
	reviewerB := actorWithRole(domain.RoleTarmoq)
	corr := reviewCorrespondence(reviewerA, reviewerB.ID)
	corr.Reviewers[0].Status = domain.ReviewerApproved

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)

	result, err := svc.ApproveReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            reviewerB,
	})

	assert.NoError(t, err)
	assert.Equal(t, workflow.ReviewApproved, result.Outcome)
	assert.Equal(t, domain.StageSignature, result.Correspondence.Stage)
	assert.Equal(t, domain.StatusTasdiqlangan, result.Correspondence.Status)
}

func TestCorrespondenceService_ApproveReview_NotAReviewer(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := reviewCorrespondence(uuid.New())

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.ApproveReview(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleTarmoq),
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

// --- RejectReview ---

func TestCorrespondenceService_RejectReview_RequiresComment(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()

	_, err := svc.RejectReview(context.Background(), &service.RejectReviewInput{
		CorrespondenceID: uuid.New(),
		Actor:            actorWithRole(domain.RoleTarmoq),
		Comment:          "   ",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	corrRepo.AssertNotCalled(t, "GetByID")
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

func TestCorrespondenceService_RejectReview_MovesToRevisionRequested(t *testing.T) {
	svc, corrRepo, userRepo, _, notifier := setupCorrespondenceService()
	reviewer := actorWithRole(domain.RoleTarmoq)
	corr := reviewCorrespondence(reviewer.ID, uuid.New())
	executorID := uuid.New()
	corr.MainExecutorID = &executorID
	executor := &domain.User{ID: executorID, FullName: "Ijrochi"}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)
	userRepo.On("GetByID", mock.Anything, executorID).Return(executor, nil)
	notifier.On("NotifyReviewRejected", mock.Anything, executor, mock.Anything, "3-band aniqlashtirilsin").Return(nil)

	result, err := svc.RejectReview(context.Background(), &service.RejectReviewInput{
		CorrespondenceID: corr.ID,
		Actor:            reviewer,
		Comment:          "3-band aniqlashtirilsin",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageRevisionRequested, result.Stage)
	assert.Equal(t, domain.StatusRadEtilgan, result.Status)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.ReviewerRejected, commit.ReviewerUpdate.Status)
	assert.Equal(t, "3-band aniqlashtirilsin", commit.ReviewerUpdate.Comment)
	assert.Equal(t, domain.AuditReviewRejected, commit.Audit.Action)
	assert.Equal(t, "3-band aniqlashtirilsin", commit.Audit.RejectionReason)
	notifier.AssertExpectations(t)
}

func TestCorrespondenceService_RejectReview_AlreadyVotedReviewer(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	reviewer := actorWithRole(domain.RoleTarmoq)
	corr := reviewCorrespondence(reviewer.ID)
	corr.Reviewers[0].Status = domain.ReviewerApproved

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.RejectReview(context.Background(), &service.RejectReviewInput{
		CorrespondenceID: corr.ID,
		Actor:            reviewer,
		Comment:          "fikrim o'zgardi",
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

// --- Sign / Dispatch ---

func TestCorrespondenceService_SignDocument_MovesToDispatch(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageSignature)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)

	result, err := svc.SignDocument(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBoshqaruv),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageDispatch, result.Stage)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.AuditSigned, commit.Audit.Action)
}

func TestCorrespondenceService_SignDocument_WrongRole(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageSignature)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.SignDocument(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBankApparati),
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCorrespondenceService_DispatchDocument_Archives(t *testing.T) {
	svc, corrRepo, userRepo, _, notifier := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageDispatch)
	author := &domain.User{ID: corr.AuthorID, FullName: "Muallif"}

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)
	corrRepo.On("CommitTransition", mock.Anything, mock.AnythingOfType("*port.TransitionCommit")).Return(nil)
	userRepo.On("GetByID", mock.Anything, corr.AuthorID).Return(author, nil)
	notifier.On("NotifyDispatched", mock.Anything, author, mock.Anything).Return(nil)

	result, err := svc.DispatchDocument(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBankApparati),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StageArchived, result.Stage)
	assert.Equal(t, domain.StatusArxivlangan, result.Status)

	commit := corrRepo.Calls[1].Arguments.Get(1).(*port.TransitionCommit)
	assert.Equal(t, domain.AuditDispatched, commit.Audit.Action)
}

func TestCorrespondenceService_DispatchDocument_TerminalStageRejectsFurtherWork(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageArchived)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	_, err := svc.DispatchDocument(context.Background(), &service.TransitionInput{
		CorrespondenceID: corr.ID,
		Actor:            actorWithRole(domain.RoleBankApparati),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	corrRepo.AssertNotCalled(t, "CommitTransition")
}

// --- AllowedActions ---

func TestCorrespondenceService_AllowedActions_ReflectsStageAndRole(t *testing.T) {
	svc, corrRepo, _, _, _ := setupCorrespondenceService()
	corr := testCorrespondence(domain.StageAssignment)

	corrRepo.On("GetByID", mock.Anything, corr.ID).Return(corr, nil)

	actions, err := svc.AllowedActions(context.Background(), corr.ID, actorWithRole(domain.RoleBoshqaruv))

	assert.NoError(t, err)
	assert.Equal(t, []workflow.Action{workflow.ActionAssignExecutor}, actions)
}
