package port

import (
	"context"

	"github.com/google/uuid"

	"devonxona/internal/domain"
)

// AuditRepository reads the append-only transition log. Writes happen only
// inside CorrespondenceRepository commits so that a transition and its audit
// entry land atomically.
type AuditRepository interface {
	ListByCorrespondence(ctx context.Context, correspondenceID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error)
}
