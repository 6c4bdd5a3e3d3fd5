package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type departmentRepo struct {
	db *sqlx.DB
}

// NewDepartmentRepo creates a new PostgreSQL-backed DepartmentRepository.
func NewDepartmentRepo(db *sqlx.DB) port.DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	if dept.ID == uuid.Nil {
		dept.ID = uuid.New()
	}
	dept.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (id, name, parent_id, review_required, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		dept.ID, dept.Name, dept.ParentID, dept.ReviewRequired, dept.CreatedAt)
	if err != nil {
		return fmt.Errorf("departmentRepo.Create: %w", err)
	}
	return nil
}

func (r *departmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.GetContext(ctx, &dept, "SELECT * FROM departments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("departmentRepo.GetByID: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.SelectContext(ctx, &depts, "SELECT * FROM departments ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.List: %w", err)
	}
	return depts, nil
}

func (r *departmentRepo) ListReviewBoard(ctx context.Context) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.SelectContext(ctx, &depts,
		"SELECT * FROM departments WHERE review_required ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.ListReviewBoard: %w", err)
	}
	return depts, nil
}
