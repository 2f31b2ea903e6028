package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stats are the entity counts shown on the landing page.
type Stats struct {
	Customers     int64 `json:"customers"`
	Vehicles      int64 `json:"vehicles"`
	OpenTasks     int64 `json:"open_tasks"`
	Cases         int64 `json:"cases"`
	Kaufvertraege int64 `json:"kaufvertraege"`
}

type StatsRepository interface {
	CollectStats(ctx context.Context) (*Stats, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

const (
	statsCacheKey = "autohaus:dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

var _ DashboardService = (*dashboardService)(nil)

// dashboardService serves counts from a short-lived Redis cache. The
// counts run five table scans, which is too much for every page load
// but fine every half minute. A nil Redis client disables caching.
type dashboardService struct {
	repo   StatsRepository
	cache  *redis.Client
	logger *slog.Logger
}

func NewDashboardService(repo StatsRepository, cache *redis.Client, logger *slog.Logger) DashboardService {
	if repo == nil {
		panic("stats repository cannot be nil")
	}
	return &dashboardService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "dashboardService")),
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.repo.CollectStats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to collect dashboard stats", slog.Any("error", err))
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *dashboardService) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WarnContext(ctx, "Dashboard stats cache read failed", slog.Any("error", err))
		}
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.WarnContext(ctx, "Dashboard stats cache entry is corrupt", slog.Any("error", err))
		return nil
	}
	return &stats
}

func (s *dashboardService) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "Dashboard stats cache write failed", slog.Any("error", err))
	}
}
