package noop

import (
	"context"
	"log"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that logs notices instead of sending
// email. Used in development and tests.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (noopNotifier) NotifyExecutorAssigned(_ context.Context, to *domain.User, c *domain.Correspondence) error {
	log.Printf("[NOOP EMAIL] executor assigned notice for %s (%s): correspondence %s", to.FullName, to.Email, c.ID)
	return nil
}

func (noopNotifier) NotifyReviewRequested(_ context.Context, to *domain.User, c *domain.Correspondence) error {
	log.Printf("[NOOP EMAIL] review requested notice for %s (%s): correspondence %s", to.FullName, to.Email, c.ID)
	return nil
}

func (noopNotifier) NotifyReviewRejected(_ context.Context, to *domain.User, c *domain.Correspondence, reason string) error {
	log.Printf("[NOOP EMAIL] review rejected notice for %s (%s): correspondence %s, reason: %s", to.FullName, to.Email, c.ID, reason)
	return nil
}

func (noopNotifier) NotifyDispatched(_ context.Context, to *domain.User, c *domain.Correspondence) error {
	log.Printf("[NOOP EMAIL] dispatched notice for %s (%s): correspondence %s", to.FullName, to.Email, c.ID)
	return nil
}
