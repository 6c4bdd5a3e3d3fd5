package service

import (
	"context"

	"devonxona/internal/domain"
	"devonxona/internal/port"
	"devonxona/internal/workflow"
)

// StageCount pairs a stage with its document count and display label.
type StageCount struct {
	Stage domain.Stage `json:"stage"`
	Label string       `json:"label"`
	Count int          `json:"count"`
}

// DashboardStats is the aggregate snapshot rendered on the dashboard.
type DashboardStats struct {
	Total       int                               `json:"total"`
	ByStage     []StageCount                      `json:"by_stage"`
	ByKartoteka map[domain.Kartoteka]int          `json:"by_kartoteka"`
	ByType      map[domain.CorrespondenceType]int `json:"by_type"`
}

// StatsService aggregates correspondence counts for the dashboard.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	repo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(repo port.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

// stageOrder fixes the dashboard ordering to workflow progression.
var stageOrder = []domain.Stage{
	domain.StageAssignment,
	domain.StageExecution,
	domain.StageDrafting,
	domain.StageRevisionRequested,
	domain.StageFinalReview,
	domain.StageSignature,
	domain.StageDispatch,
	domain.StageArchived,
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	byStage, err := s.repo.CountByStage(ctx)
	if err != nil {
		return nil, err
	}
	byKartoteka, err := s.repo.CountByKartoteka(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		ByKartoteka: byKartoteka,
		ByType:      byType,
	}
	for _, stage := range stageOrder {
		count := byStage[stage]
		stats.Total += count
		stats.ByStage = append(stats.ByStage, StageCount{
			Stage: stage,
			Label: workflow.StageLabel(stage),
			Count: count,
		})
	}
	return stats, nil
}
