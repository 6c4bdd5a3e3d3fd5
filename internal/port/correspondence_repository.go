package port

import (
	"context"

	"github.com/google/uuid"

	"devonxona/internal/domain"
)

// CorrespondenceFilter narrows List results for the dashboard.
type CorrespondenceFilter struct {
	Type      domain.CorrespondenceType
	Kartoteka domain.Kartoteka
	Stage     domain.Stage
	Search    string // matches title, content, or source
	Offset    int
	Limit     int
}

// ReviewerStatusUpdate mutates one reviewer entry of the current round.
type ReviewerStatusUpdate struct {
	UserID  uuid.UUID
	Round   int
	Status  domain.ReviewerStatus
	Comment string
}

// TransitionCommit describes the full effect of one workflow transition. The
// repository applies it atomically: the stage update is conditional on
// FromStage still being current (a mismatch yields domain.ErrStageConflict
// and nothing is written), and the audit entry lands in the same transaction.
type TransitionCommit struct {
	Correspondence *domain.Correspondence
	FromStage      domain.Stage
	Audit          *domain.AuditLogEntry
	NewReviewers   []domain.Reviewer     // replaces the round's entries when non-nil
	ReviewerUpdate *ReviewerStatusUpdate // mutates one entry when non-nil
}

// CorrespondenceRepository persists correspondence records. GetByID loads the
// current-round reviewer entries alongside the row.
type CorrespondenceRepository interface {
	Create(ctx context.Context, c *domain.Correspondence, audit *domain.AuditLogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error)
	List(ctx context.Context, filter CorrespondenceFilter) ([]domain.Correspondence, int, error)
	CommitTransition(ctx context.Context, commit *TransitionCommit) error
}
