package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Day(ctx context.Context, profileID int64, day string) (*models.DailyStat, error) {
	args := m.Called(ctx, profileID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyStat), args.Error(1)
}

func (m *MockStatsRepository) Range(ctx context.Context, profileID int64, fromDay, toDay string) ([]models.DailyStat, error) {
	args := m.Called(ctx, profileID, fromDay, toDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyStat), args.Error(1)
}

func (m *MockStatsRepository) Overview(ctx context.Context, profileID int64, today string) (*models.StatsOverview, error) {
	args := m.Called(ctx, profileID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsOverview), args.Error(1)
}

func (m *MockStatsRepository) ReconcileDay(ctx context.Context, profileID int64, day string) error {
	args := m.Called(ctx, profileID, day)
	return args.Error(0)
}
