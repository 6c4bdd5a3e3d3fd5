package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type correspondenceRepo struct {
	db *sqlx.DB
}

// NewCorrespondenceRepo creates a new PostgreSQL-backed CorrespondenceRepository.
func NewCorrespondenceRepo(db *sqlx.DB) port.CorrespondenceRepository {
	return &correspondenceRepo{db: db}
}

func (r *correspondenceRepo) Create(ctx context.Context, c *domain.Correspondence, audit *domain.AuditLogEntry) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("correspondenceRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO correspondences (id, type, title, content, source, stage, status, kartoteka,
			department, author_id, main_executor_id, internal_assignee_id, review_round,
			deadline, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		c.ID, c.Type, c.Title, c.Content, c.Source, c.Stage, c.Status, c.Kartoteka,
		c.Department, c.AuthorID, c.MainExecutorID, c.InternalAssigneeID, c.ReviewRound,
		c.Deadline, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("correspondenceRepo.Create: %w", err)
	}

	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("correspondenceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *correspondenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error) {
	var c domain.Correspondence
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM correspondences WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("correspondenceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &c.Reviewers,
		`SELECT * FROM reviewers WHERE correspondence_id = $1 AND round = $2 ORDER BY created_at`,
		id, c.ReviewRound)
	if err != nil {
		return nil, fmt.Errorf("correspondenceRepo.GetByID reviewers: %w", err)
	}
	return &c, nil
}

func (r *correspondenceRepo) List(ctx context.Context, filter port.CorrespondenceFilter) ([]domain.Correspondence, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.Type != "" {
		where = append(where, fmt.Sprintf("type = $%d", idx))
		args = append(args, filter.Type)
		idx++
	}
	if filter.Kartoteka != "" {
		where = append(where, fmt.Sprintf("kartoteka = $%d", idx))
		args = append(args, filter.Kartoteka)
		idx++
	}
	if filter.Stage != "" {
		where = append(where, fmt.Sprintf("stage = $%d", idx))
		args = append(args, filter.Stage)
		idx++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d OR source ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM correspondences WHERE "+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("correspondenceRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(
		"SELECT * FROM correspondences WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, idx, idx+1)
	args = append(args, limit, filter.Offset)

	var list []domain.Correspondence
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("correspondenceRepo.List: %w", err)
	}
	return list, total, nil
}

// CommitTransition applies one workflow transition atomically. The stage
// update is conditional on the stage loaded at validation time; if another
// transition won the race nothing is written and ErrStageConflict is returned.
func (r *correspondenceRepo) CommitTransition(ctx context.Context, commit *port.TransitionCommit) error {
	c := commit.Correspondence
	c.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("correspondenceRepo.CommitTransition begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE correspondences
		 SET stage = $1, status = $2, main_executor_id = $3, internal_assignee_id = $4,
		     review_round = $5, updated_at = $6
		 WHERE id = $7 AND stage = $8`,
		c.Stage, c.Status, c.MainExecutorID, c.InternalAssigneeID,
		c.ReviewRound, c.UpdatedAt, c.ID, commit.FromStage)
	if err != nil {
		return fmt.Errorf("correspondenceRepo.CommitTransition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("correspondenceRepo.CommitTransition rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrStageConflict
	}

	if commit.NewReviewers != nil {
		for i := range commit.NewReviewers {
			rv := &commit.NewReviewers[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO reviewers (id, correspondence_id, user_id, user_name, department,
					status, comment, round, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				rv.ID, rv.CorrespondenceID, rv.UserID, rv.UserName, rv.Department,
				rv.Status, rv.Comment, rv.Round, rv.CreatedAt, rv.UpdatedAt)
			if err != nil {
				return fmt.Errorf("correspondenceRepo.CommitTransition reviewers: %w", err)
			}
		}
	}

	if commit.ReviewerUpdate != nil {
		u := commit.ReviewerUpdate
		res, err := tx.ExecContext(ctx,
			`UPDATE reviewers SET status = $1, comment = $2, updated_at = $3
			 WHERE correspondence_id = $4 AND user_id = $5 AND round = $6`,
			u.Status, u.Comment, time.Now().UTC(), c.ID, u.UserID, u.Round)
		if err != nil {
			return fmt.Errorf("correspondenceRepo.CommitTransition reviewer update: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("correspondenceRepo.CommitTransition reviewer rows: %w", err)
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
	}

	if err := insertAudit(ctx, tx, commit.Audit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("correspondenceRepo.CommitTransition commit: %w", err)
	}
	return nil
}

func insertAudit(ctx context.Context, tx *sqlx.Tx, entry *domain.AuditLogEntry) error {
	if entry == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO audit_log (id, correspondence_id, user_id, user_name, action, details,
			rejection_reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.CorrespondenceID, entry.UserID, entry.UserName, entry.Action,
		entry.Details, entry.RejectionReason, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("correspondenceRepo audit insert: %w", err)
	}
	return nil
}
