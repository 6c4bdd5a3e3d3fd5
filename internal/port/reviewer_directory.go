package port

import (
	"context"

	"devonxona/internal/domain"
)

// ReviewerDirectory resolves the required-reviewer set for a correspondence
// entering FINAL_REVIEW. The default implementation selects the heads of the
// review-board departments; the executor only cares about the resulting set.
type ReviewerDirectory interface {
	RequiredReviewers(ctx context.Context, c *domain.Correspondence) ([]domain.User, error)
}
