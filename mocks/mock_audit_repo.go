package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
)

// MockAuditRepo is a mock implementation of port.AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) ListByCorrespondence(ctx context.Context, correspondenceID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	args := m.Called(ctx, correspondenceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Int(1), args.Error(2)
}
