package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

// MockCorrespondenceRepo is a mock implementation of port.CorrespondenceRepository.
type MockCorrespondenceRepo struct {
	mock.Mock
}

func (m *MockCorrespondenceRepo) Create(ctx context.Context, c *domain.Correspondence, audit *domain.AuditLogEntry) error {
	args := m.Called(ctx, c, audit)
	return args.Error(0)
}

func (m *MockCorrespondenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceRepo) List(ctx context.Context, filter port.CorrespondenceFilter) ([]domain.Correspondence, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Correspondence), args.Int(1), args.Error(2)
}

func (m *MockCorrespondenceRepo) CommitTransition(ctx context.Context, commit *port.TransitionCommit) error {
	args := m.Called(ctx, commit)
	return args.Error(0)
}
