package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
)

// MockReviewerDirectory is a mock implementation of port.ReviewerDirectory.
type MockReviewerDirectory struct {
	mock.Mock
}

func (m *MockReviewerDirectory) RequiredReviewers(ctx context.Context, c *domain.Correspondence) ([]domain.User, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
