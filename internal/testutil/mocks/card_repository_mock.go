package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) UpdateContent(ctx context.Context, id int64, front, back, hint string) error {
	args := m.Called(ctx, id, front, back, hint)
	return args.Error(0)
}

func (m *MockCardRepository) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	args := m.Called(ctx, id, suspended)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) DueCards(ctx context.Context, deckID int64, now time.Time, newLimit, reviewLimit int) ([]models.Card, error) {
	args := m.Called(ctx, deckID, now, newLimit, reviewLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) DailyLoad(ctx context.Context, deckID int64, day string) (int, int, error) {
	args := m.Called(ctx, deckID, day)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockCardRepository) SaveReview(ctx context.Context, outcome models.ReviewOutcome, timeSeconds float64) (bool, error) {
	args := m.Called(ctx, outcome, timeSeconds)
	return args.Bool(0), args.Error(1)
}
