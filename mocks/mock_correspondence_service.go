package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
	"devonxona/internal/service"
	"devonxona/internal/workflow"
)

// MockCorrespondenceService is a mock implementation of service.CorrespondenceService.
type MockCorrespondenceService struct {
	mock.Mock
}

func (m *MockCorrespondenceService) CreateOutgoing(ctx context.Context, input *service.CreateCorrespondenceInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) CreateIncoming(ctx context.Context, input *service.CreateCorrespondenceInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Correspondence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) List(ctx context.Context, filter service.ListFilter) ([]domain.Correspondence, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Correspondence), args.Int(1), args.Error(2)
}

func (m *MockCorrespondenceService) AllowedActions(ctx context.Context, id uuid.UUID, actor service.Actor) ([]workflow.Action, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workflow.Action), args.Error(1)
}

func (m *MockCorrespondenceService) AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	args := m.Called(ctx, id, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Int(1), args.Error(2)
}

func (m *MockCorrespondenceService) AssignExecutor(ctx context.Context, input *service.AssignExecutorInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) AssignInternalEmployee(ctx context.Context, input *service.AssignInternalInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) StartDrafting(ctx context.Context, input *service.TransitionInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) SubmitForReview(ctx context.Context, input *service.TransitionInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) ApproveReview(ctx context.Context, input *service.TransitionInput) (*service.ReviewResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewResult), args.Error(1)
}

func (m *MockCorrespondenceService) RejectReview(ctx context.Context, input *service.RejectReviewInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) SignDocument(ctx context.Context, input *service.TransitionInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceService) DispatchDocument(ctx context.Context, input *service.TransitionInput) (*domain.Correspondence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}
