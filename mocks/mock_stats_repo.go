package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devonxona/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) CountByStage(ctx context.Context) (map[domain.Stage]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Stage]int), args.Error(1)
}

func (m *MockStatsRepo) CountByKartoteka(ctx context.Context) (map[domain.Kartoteka]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Kartoteka]int), args.Error(1)
}

func (m *MockStatsRepo) CountByType(ctx context.Context) (map[domain.CorrespondenceType]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CorrespondenceType]int), args.Error(1)
}
