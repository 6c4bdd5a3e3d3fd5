package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository. The table is
// insert-only; inserts happen inside correspondence transaction commits.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) ListByCorrespondence(ctx context.Context, correspondenceID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_log WHERE correspondence_id = $1", correspondenceID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByCorrespondence count: %w", err)
	}

	var entries []domain.AuditLogEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_log WHERE correspondence_id = $1
		 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		correspondenceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByCorrespondence: %w", err)
	}
	return entries, total, nil
}
