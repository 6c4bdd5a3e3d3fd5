package port

import (
	"context"

	"devonxona/internal/domain"
)

// StatsRepository aggregates correspondence counts for the dashboard.
type StatsRepository interface {
	CountByStage(ctx context.Context) (map[domain.Stage]int, error)
	CountByKartoteka(ctx context.Context) (map[domain.Kartoteka]int, error)
	CountByType(ctx context.Context) (map[domain.CorrespondenceType]int, error)
}
