package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/dashboard"
	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/pkg/apperrors"
)

type StatsRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ dashboard.StatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(db DBPool, logger *slog.Logger) *StatsRepository {
	if db == nil {
		panic("DBPool cannot be nil for StatsRepository")
	}
	return &StatsRepository{db: db, logger: logger.With("component", "StatsRepository")}
}

func (r *StatsRepository) CollectStats(ctx context.Context) (*dashboard.Stats, error) {
	var stats dashboard.Stats

	if err := r.count(ctx, `SELECT COUNT(*) FROM customers`, &stats.Customers); err != nil {
		return nil, err
	}
	if err := r.count(ctx, `SELECT COUNT(*) FROM vehicles`, &stats.Vehicles); err != nil {
		return nil, err
	}
	if err := r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE status = '`+task.StatusOffen+`'`, &stats.OpenTasks); err != nil {
		return nil, err
	}
	if err := r.count(ctx, `SELECT COUNT(*) FROM client_experience_cases`, &stats.Cases); err != nil {
		return nil, err
	}
	if err := r.count(ctx, `SELECT COUNT(*) FROM kaufvertraege`, &stats.Kaufvertraege); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) count(ctx context.Context, query string, dest *int64) error {
	if err := r.db.QueryRow(ctx, query).Scan(dest); err != nil {
		r.logger.ErrorContext(ctx, "Failed to run stats count", slog.Any("error", err))
		return fmt.Errorf("%w: failed to run stats count: %w", apperrors.ErrDatabase, err)
	}
	return nil
}
