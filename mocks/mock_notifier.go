package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyExecutorAssigned(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	args := m.Called(ctx, to, c)
	return args.Error(0)
}

func (m *MockNotifier) NotifyReviewRequested(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	args := m.Called(ctx, to, c)
	return args.Error(0)
}

func (m *MockNotifier) NotifyReviewRejected(ctx context.Context, to *domain.User, c *domain.Correspondence, reason string) error {
	args := m.Called(ctx, to, c, reason)
	return args.Error(0)
}

func (m *MockNotifier) NotifyDispatched(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	args := m.Called(ctx, to, c)
	return args.Error(0)
}
