package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

type countRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (r *statsRepo) countBy(ctx context.Context, column string) ([]countRow, error) {
	var rows []countRow
	query := fmt.Sprintf(
		"SELECT %s AS key, COUNT(*) AS count FROM correspondences GROUP BY %s", column, column)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("statsRepo.countBy %s: %w", column, err)
	}
	return rows, nil
}

func (r *statsRepo) CountByStage(ctx context.Context) (map[domain.Stage]int, error) {
	rows, err := r.countBy(ctx, "stage")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Stage]int, len(rows))
	for _, row := range rows {
		out[domain.Stage(row.Key)] = row.Count
	}
	return out, nil
}

func (r *statsRepo) CountByKartoteka(ctx context.Context) (map[domain.Kartoteka]int, error) {
	rows, err := r.countBy(ctx, "kartoteka")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Kartoteka]int, len(rows))
	for _, row := range rows {
		out[domain.Kartoteka(row.Key)] = row.Count
	}
	return out, nil
}

func (r *statsRepo) CountByType(ctx context.Context) (map[domain.CorrespondenceType]int, error) {
	rows, err := r.countBy(ctx, "type")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.CorrespondenceType]int, len(rows))
	for _, row := range rows {
		out[domain.CorrespondenceType(row.Key)] = row.Count
	}
	return out, nil
}
