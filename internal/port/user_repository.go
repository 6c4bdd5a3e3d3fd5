package port

import (
	"context"

	"github.com/google/uuid"

	"devonxona/internal/domain"
)

// UserRepository persists the chancellery staff directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	ListByDepartment(ctx context.Context, department string) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// DepartmentRepository persists organizational units.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	ListReviewBoard(ctx context.Context) ([]domain.Department, error)
}
