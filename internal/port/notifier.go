package port

import (
	"context"

	"devonxona/internal/domain"
)

// Notifier delivers workflow notices to participants. Delivery is best
// effort: a failed notification never fails the transition that triggered it.
type Notifier interface {
	NotifyExecutorAssigned(ctx context.Context, to *domain.User, c *domain.Correspondence) error
	NotifyReviewRequested(ctx context.Context, to *domain.User, c *domain.Correspondence) error
	NotifyReviewRejected(ctx context.Context, to *domain.User, c *domain.Correspondence, reason string) error
	NotifyDispatched(ctx context.Context, to *domain.User, c *domain.Correspondence) error
}
