package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"devonxona/internal/domain"
	"devonxona/internal/port"
	"devonxona/internal/workflow"
)

// Actor identifies the user performing an operation. It comes from verified
// JWT claims; relationship checks (executor, reviewer) are always made
// against the freshly loaded correspondence, never against client state.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role domain.UserRole
}

func (a Actor) user() *domain.User {
	return &domain.User{ID: a.ID, FullName: a.Name, Role: a.Role}
}

// CreateCorrespondenceInput is the DTO for creating a correspondence.
type CreateCorrespondenceInput struct {
	Actor     Actor
	Title     string
	Content   string
	Source    string
	Kartoteka domain.Kartoteka
	Deadline  *time.Time
}

// Validate checks the creation fields.
func (in *CreateCorrespondenceInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Kartoteka, validation.Required, validation.By(validKartoteka)),
	)
}

func validKartoteka(value interface{}) error {
	k, _ := value.(domain.Kartoteka)
	if !domain.ValidKartoteka[k] {
		return fmt.Errorf("unknown kartoteka %q", k)
	}
	return nil
}

// TransitionInput is the DTO shared by transitions that need no extra fields.
type TransitionInput struct {
	CorrespondenceID uuid.UUID
	Actor            Actor
}

// AssignExecutorInput is the DTO for assigning the main executor.
type AssignExecutorInput struct {
	CorrespondenceID uuid.UUID
	Actor            Actor
	ExecutorID       uuid.UUID
}

// AssignInternalInput is the DTO for delegating to a department employee.
type AssignInternalInput struct {
	CorrespondenceID uuid.UUID
	Actor            Actor
	EmployeeID       uuid.UUID
}

// RejectReviewInput is the DTO for rejecting a review. Comment is mandatory.
type RejectReviewInput struct {
	CorrespondenceID uuid.UUID
	Actor            Actor
	Comment          string
}

// ReviewResult distinguishes a partial approval (round still pending, stage
// unchanged) from a full one (stage advanced to SIGNATURE). Callers must not
// infer this from payload shape.
type ReviewResult struct {
	Correspondence *domain.Correspondence `json:"correspondence"`
	Outcome        workflow.ReviewOutcome `json:"outcome"`
}

// ListFilter re-exports the repository filter for handlers.
type ListFilter = port.CorrespondenceFilter

// CorrespondenceService is the transition executor: the only write path to a
// correspondence. Every operation revalidates its permission predicate
// against a fresh snapshot, commits atomically with exactly one audit entry,
// and leaves the document untouched on any failure.
type CorrespondenceService interface {
	CreateOutgoing(ctx context.Context, input *CreateCorrespondenceInput) (*domain.Correspondence, error)
	CreateIncoming(ctx context.Context, input *CreateCorrespondenceInput) (*domain.Correspondence, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Correspondence, int, error)
	AllowedActions(ctx context.Context, id uuid.UUID, actor Actor) ([]workflow.Action, error)
	AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error)

	AssignExecutor(ctx context.Context, input *AssignExecutorInput) (*domain.Correspondence, error)
	AssignInternalEmployee(ctx context.Context, input *AssignInternalInput) (*domain.Correspondence, error)
	StartDrafting(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error)
	SubmitForReview(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error)
	ApproveReview(ctx context.Context, input *TransitionInput) (*ReviewResult, error)
	RejectReview(ctx context.Context, input *RejectReviewInput) (*domain.Correspondence, error)
	SignDocument(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error)
	DispatchDocument(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error)
}

type correspondenceService struct {
	corrRepo  port.CorrespondenceRepository
	userRepo  port.UserRepository
	auditRepo port.AuditRepository
	directory port.ReviewerDirectory
	notifier  port.Notifier
}

// NewCorrespondenceService creates a new CorrespondenceService implementation.
func NewCorrespondenceService(
	corrRepo port.CorrespondenceRepository,
	userRepo port.UserRepository,
	auditRepo port.AuditRepository,
	directory port.ReviewerDirectory,
	notifier port.Notifier,
) CorrespondenceService {
	return &correspondenceService{
		corrRepo:  corrRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		directory: directory,
		notifier:  notifier,
	}
}

func auditEntry(c *domain.Correspondence, actor Actor, action domain.AuditAction, details, rejectionReason string) *domain.AuditLogEntry {
	actorID := actor.ID
	return &domain.AuditLogEntry{
		ID:               uuid.New(),
		CorrespondenceID: c.ID,
		UserID:           &actorID,
		UserName:         actor.Name,
		Action:           action,
		Details:          details,
		RejectionReason:  rejectionReason,
		CreatedAt:        time.Now().UTC(),
	}
}

// notify runs fn and logs on failure. Notifications never fail a transition.
func (s *correspondenceService) notify(op string, fn func() error) {
	if s.notifier == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("correspondenceService.%s: notification failed: %v", op, err)
	}
}

func (s *correspondenceService) create(ctx context.Context, input *CreateCorrespondenceInput, t domain.CorrespondenceType) (*domain.Correspondence, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	stage := workflow.InitialStage(t)
	now := time.Now().UTC()
	c := &domain.Correspondence{
		ID:        uuid.New(),
		Type:      t,
		Title:     input.Title,
		Content:   input.Content,
		Source:    input.Source,
		Stage:     stage,
		Status:    domain.StatusForStage(stage),
		Kartoteka: input.Kartoteka,
		AuthorID:  input.Actor.ID,
		Deadline:  input.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}

	author, err := s.userRepo.GetByID(ctx, input.Actor.ID)
	if err == nil {
		c.Department = author.Department
	}

	entry := auditEntry(c, input.Actor, domain.AuditCreated,
		fmt.Sprintf("hujjat yaratildi (%s)", t), "")
	if err := s.corrRepo.Create(ctx, c, entry); err != nil {
		return nil, fmt.Errorf("creating correspondence: %w", err)
	}
	return c, nil
}

func (s *correspondenceService) CreateOutgoing(ctx context.Context, input *CreateCorrespondenceInput) (*domain.Correspondence, error) {
	return s.create(ctx, input, domain.TypeChiquvchi)
}

func (s *correspondenceService) CreateIncoming(ctx context.Context, input *CreateCorrespondenceInput) (*domain.Correspondence, error) {
	switch input.Actor.Role {
	case domain.RoleResepshn, domain.RoleBoshqaruv, domain.RoleAdmin:
	default:
		return nil, domain.ErrPermissionDenied
	}
	if strings.TrimSpace(input.Source) == "" {
		return nil, fmt.Errorf("%w: source is required for incoming correspondence", domain.ErrValidation)
	}
	return s.create(ctx, input, domain.TypeKiruvchi)
}

func (s *correspondenceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error) {
	return s.corrRepo.GetByID(ctx, id)
}

func (s *correspondenceService) List(ctx context.Context, filter ListFilter) ([]domain.Correspondence, int, error) {
	return s.corrRepo.List(ctx, filter)
}

func (s *correspondenceService) AllowedActions(ctx context.Context, id uuid.UUID, actor Actor) ([]workflow.Action, error) {
	c, err := s.corrRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.AllowedActions(actor.user(), c), nil
}

func (s *correspondenceService) AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	if _, err := s.corrRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.auditRepo.ListByCorrespondence(ctx, id, offset, limit)
}

func (s *correspondenceService) AssignExecutor(ctx context.Context, input *AssignExecutorInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageAssignment {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanAssignExecutor(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	executor, err := s.userRepo.GetByID(ctx, input.ExecutorID)
	if err != nil {
		return nil, err
	}
	if executor.Role != domain.RoleTarmoq {
		return nil, fmt.Errorf("%w: executor must be a department head", domain.ErrValidation)
	}

	from := c.Stage
	c.MainExecutorID = &executor.ID
	c.Stage = domain.StageExecution
	c.Status = domain.StatusForStage(c.Stage)
	c.Department = executor.Department

	entry := auditEntry(c, input.Actor, domain.AuditExecutorAssigned,
		fmt.Sprintf("asosiy ijrochi: %s", executor.FullName), "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry,
	}); err != nil {
		return nil, err
	}

	s.notify("AssignExecutor", func() error {
		return s.notifier.NotifyExecutorAssigned(ctx, executor, c)
	})
	return c, nil
}

func (s *correspondenceService) AssignInternalEmployee(ctx context.Context, input *AssignInternalInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageExecution {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanAssignInternal(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	employee, err := s.userRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, input.Actor.ID)
	if err != nil {
		return nil, err
	}
	if employee.Department != actor.Department {
		return nil, fmt.Errorf("%w: employee must belong to the executor's department", domain.ErrValidation)
	}

	// Delegation within EXECUTION: stage does not change. Reassignment
	// overwrites the previous assignee.
	from := c.Stage
	c.InternalAssigneeID = &employee.ID

	entry := auditEntry(c, input.Actor, domain.AuditInternalAssigned,
		fmt.Sprintf("ichki ijrochi: %s", employee.FullName), "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *correspondenceService) StartDrafting(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageExecution {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanStartDrafting(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	from := c.Stage
	c.Stage = domain.StageDrafting
	c.Status = domain.StatusForStage(c.Stage)

	entry := auditEntry(c, input.Actor, domain.AuditDraftingStarted, "loyiha tayyorlash boshlandi", "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *correspondenceService) SubmitForReview(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageDrafting && c.Stage != domain.StageRevisionRequested {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanSubmitForReview(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	required, err := s.directory.RequiredReviewers(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("resolving reviewers: %w", err)
	}
	if len(required) == 0 {
		return nil, fmt.Errorf("%w: no reviewers configured for this correspondence", domain.ErrValidation)
	}

	from := c.Stage
	c.Stage = domain.StageFinalReview
	c.Status = domain.StatusForStage(c.Stage)
	c.ReviewRound++

	now := time.Now().UTC()
	reviewers := make([]domain.Reviewer, 0, len(required))
	seen := make(map[uuid.UUID]bool, len(required))
	for _, u := range required {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		reviewers = append(reviewers, domain.Reviewer{
			ID:               uuid.New(),
			CorrespondenceID: c.ID,
			UserID:           u.ID,
			UserName:         u.FullName,
			Department:       u.Department,
			Status:           domain.ReviewerPending,
			Round:            c.ReviewRound,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	entry := auditEntry(c, input.Actor, domain.AuditSubmittedForReview,
		fmt.Sprintf("kelishuvga yuborildi, %d ta kelishuvchi", len(reviewers)), "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry, NewReviewers: reviewers,
	}); err != nil {
		return nil, err
	}
	c.Reviewers = reviewers

	for i := range required {
		u := required[i]
		s.notify("SubmitForReview", func() error {
			return s.notifier.NotifyReviewRequested(ctx, &u, c)
		})
	}
	return c, nil
}

func (s *correspondenceService) ApproveReview(ctx context.Context, input *TransitionInput) (*ReviewResult, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageFinalReview {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanReview(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	// Project the approval onto the loaded round to derive the aggregate.
	for i := range c.Reviewers {
		if c.Reviewers[i].UserID == input.Actor.ID && c.Reviewers[i].Round == c.ReviewRound {
			c.Reviewers[i].Status = domain.ReviewerApproved
		}
	}
	outcome := workflow.QuorumOutcome(workflow.CurrentRound(c.Reviewers, c.ReviewRound))

	from := c.Stage
	if outcome == workflow.ReviewApproved {
		c.Stage = domain.StageSignature
		c.Status = domain.StatusForStage(c.Stage)
	}

	entry := auditEntry(c, input.Actor, domain.AuditReviewApproved,
		fmt.Sprintf("kelishuvchi tasdiqladi (%s)", outcome), "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c,
		FromStage:      from,
		Audit:          entry,
		ReviewerUpdate: &port.ReviewerStatusUpdate{
			UserID: input.Actor.ID,
			Round:  c.ReviewRound,
			Status: domain.ReviewerApproved,
		},
	}); err != nil {
		return nil, err
	}

	if outcome == workflow.ReviewApproved {
		return &ReviewResult{Correspondence: c, Outcome: workflow.ReviewApproved}, nil
	}
	return &ReviewResult{Correspondence: c, Outcome: workflow.ReviewPending}, nil
}

func (s *correspondenceService) RejectReview(ctx context.Context, input *RejectReviewInput) (*domain.Correspondence, error) {
	if strings.TrimSpace(input.Comment) == "" {
		return nil, fmt.Errorf("%w: rejection comment is required", domain.ErrValidation)
	}

	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageFinalReview {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanReview(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	// First rejection short-circuits the round regardless of other entries.
	from := c.Stage
	c.Stage = domain.StageRevisionRequested
	c.Status = domain.StatusForStage(c.Stage)

	entry := auditEntry(c, input.Actor, domain.AuditReviewRejected,
		"kelishuvchi rad etdi", input.Comment)
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c,
		FromStage:      from,
		Audit:          entry,
		ReviewerUpdate: &port.ReviewerStatusUpdate{
			UserID:  input.Actor.ID,
			Round:   c.ReviewRound,
			Status:  domain.ReviewerRejected,
			Comment: input.Comment,
		},
	}); err != nil {
		return nil, err
	}

	if c.MainExecutorID != nil {
		if executor, err := s.userRepo.GetByID(ctx, *c.MainExecutorID); err == nil {
			s.notify("RejectReview", func() error {
				return s.notifier.NotifyReviewRejected(ctx, executor, c, input.Comment)
			})
		}
	}
	return c, nil
}

func (s *correspondenceService) SignDocument(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageSignature {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanSign(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	from := c.Stage
	c.Stage = domain.StageDispatch
	c.Status = domain.StatusForStage(c.Stage)

	entry := auditEntry(c, input.Actor, domain.AuditSigned, "hujjat imzolandi", "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *correspondenceService) DispatchDocument(ctx context.Context, input *TransitionInput) (*domain.Correspondence, error) {
	c, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID)
	if err != nil {
		return nil, err
	}
	if c.Stage != domain.StageDispatch {
		return nil, domain.ErrInvalidState
	}
	if !workflow.CanDispatch(input.Actor.user(), c) {
		return nil, domain.ErrPermissionDenied
	}

	from := c.Stage
	c.Stage = domain.StageArchived
	c.Status = domain.StatusForStage(c.Stage)

	entry := auditEntry(c, input.Actor, domain.AuditDispatched, "hujjat jo'natildi va arxivlandi", "")
	if err := s.corrRepo.CommitTransition(ctx, &port.TransitionCommit{
		Correspondence: c, FromStage: from, Audit: entry,
	}); err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, c.AuthorID); err == nil {
		s.notify("DispatchDocument", func() error {
			return s.notifier.NotifyDispatched(ctx, author, c)
		})
	}
	return c, nil
}
