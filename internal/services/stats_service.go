package services

import (
	"context"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetDailyStats(ctx context.Context, profileID int64, days int) ([]models.DailyStat, error)
	GetOverview(ctx context.Context, profileID int64) (*models.StatsOverview, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetDailyStats(ctx context.Context, profileID int64, days int) ([]models.DailyStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting daily stats: profile_id=%d, days=%d", profileID, days)

	if days <= 0 {
		days = 30
	}
	if days > 366 {
		days = 366
	}

	now := time.Now().UTC()
	to := now.Format("2006-01-02")
	from := now.AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	stats, err := s.statsRepo.Range(ctx, profileID, from, to)
	if err != nil {
		log.Error("failed to get daily stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) GetOverview(ctx context.Context, profileID int64) (*models.StatsOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats overview: profile_id=%d", profileID)

	today := time.Now().UTC().Format("2006-01-02")
	overview, err := s.statsRepo.Overview(ctx, profileID, today)
	if err != nil {
		log.Error("failed to get stats overview: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return overview, nil
}
