package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type reviewerDirectory struct {
	db *sqlx.DB
}

// NewReviewerDirectory creates a directory that resolves required reviewers
// as the active heads of the review-board departments.
func NewReviewerDirectory(db *sqlx.DB) port.ReviewerDirectory {
	return &reviewerDirectory{db: db}
}

func (d *reviewerDirectory) RequiredReviewers(ctx context.Context, c *domain.Correspondence) ([]domain.User, error) {
	var users []domain.User
	err := d.db.SelectContext(ctx, &users,
		`SELECT u.* FROM users u
		 JOIN departments dep ON dep.name = u.department
		 WHERE dep.review_required AND u.role = $1 AND u.is_active
		 ORDER BY u.full_name`,
		domain.RoleTarmoq)
	if err != nil {
		return nil, fmt.Errorf("reviewerDirectory.RequiredReviewers: %w", err)
	}
	return users, nil
}
