package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/services"
	"github.com/SiphoYawe/Laurel-sub000/internal/srs"
	"github.com/SiphoYawe/Laurel-sub000/internal/testutil/mocks"
)

var (
	svcNow     = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svcNowFunc = func() time.Time { return svcNow }
)

type reviewServiceFixture struct {
	cardRepo    *mocks.MockCardRepository
	deckRepo    *mocks.MockDeckRepository
	profileRepo *mocks.MockProfileRepository
	svc         services.ReviewService
}

func newReviewServiceFixture(sessionSize int) *reviewServiceFixture {
	f := &reviewServiceFixture{
		cardRepo:    new(mocks.MockCardRepository),
		deckRepo:    new(mocks.MockDeckRepository),
		profileRepo: new(mocks.MockProfileRepository),
	}
	f.svc = services.NewReviewService(f.cardRepo, f.deckRepo, f.profileRepo, sessionSize, services.WithClock(svcNowFunc))
	return f
}

func testDeck(profileID, deckID int64) *models.Deck {
	return &models.Deck{
		ID:            deckID,
		ProfileID:     profileID,
		Name:          "Spanish",
		NewPerDay:     10,
		ReviewsPerDay: 100,
	}
}

func testCards(deckID int64, n int) []models.Card {
	cards := make([]models.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, models.Card{
			ID:       int64(i + 1),
			DeckID:   deckID,
			Front:    fmt.Sprintf("front-%d", i+1),
			Back:     "back",
			Schedule: srs.NewCardSchedule(svcNow),
		})
	}
	return cards
}

func (f *reviewServiceFixture) expectStart(profileID, deckID int64, cards []models.Card) {
	f.deckRepo.On("Get", mock.Anything, deckID).Return(testDeck(profileID, deckID), nil)
	f.cardRepo.On("DailyLoad", mock.Anything, deckID, "2025-06-01").Return(0, 0, nil)
	f.cardRepo.On("DueCards", mock.Anything, deckID, svcNow, 10, 100).Return(cards, nil)
}

func TestStartSession(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 3))

	view, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, view.Empty)
	assert.Equal(t, 3, view.TotalCards)
	assert.Equal(t, 0, view.Position)
	require.NotNil(t, view.Current)
	assert.Equal(t, int64(1), view.Current.ID)
}

func TestStartSession_DeckNotOwned(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.deckRepo.On("Get", mock.Anything, int64(2)).Return(testDeck(99, 2), nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestStartSession_EmptyQueueIsNotAnError(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, nil)

	view, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestStartSession_ConflictWhenActive(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 2))

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.StartSession(context.Background(), 1, 2)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestStartSession_CapsBatchToSessionSize(t *testing.T) {
	f := newReviewServiceFixture(2)
	f.expectStart(1, 2, testCards(2, 5))

	view, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalCards)
}

func TestRespond_PersistsAndAdvances(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 2))
	f.cardRepo.On("SaveReview", mock.Anything, mock.Anything, 3.0).Return(true, nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	result, err := f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 3.0)
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	assert.False(t, result.Complete)
	assert.Equal(t, models.ResponseCorrect, result.Outcome.Response)
	assert.Equal(t, srs.QualityPerfect, result.Outcome.Quality)
}

func TestRespond_CompletionAwardsXP(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 1))
	f.cardRepo.On("SaveReview", mock.Anything, mock.Anything, 3.0).Return(true, nil)
	// 1 correct * 10 + session bonus 15.
	f.profileRepo.On("AddXP", mock.Anything, int64(1), int64(25)).Return(int64(25), nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	result, err := f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 3.0)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 100, result.Summary.Accuracy)
	assert.Equal(t, int64(25), result.XPAwarded)
	f.profileRepo.AssertExpectations(t)
}

func TestRespond_PersistFailureIsReportedNotFatal(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 2))
	f.cardRepo.On("SaveReview", mock.Anything, mock.Anything, 3.0).Return(false, fmt.Errorf("disk full"))

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	result, err := f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 3.0)
	require.NoError(t, err, "a failed write is reported for retry, not returned as an error")

	assert.False(t, result.Persisted)
	assert.NotEmpty(t, result.Outcome.ID, "caller needs the outcome to retry with the same id")
}

func TestRespond_InvalidResponse(t *testing.T) {
	f := newReviewServiceFixture(20)

	_, err := f.svc.Respond(context.Background(), 1, 2, models.ReviewResponse("maybe"), 0)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestRespond_NoSession(t *testing.T) {
	f := newReviewServiceFixture(20)

	_, err := f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 0)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestRespond_AfterCompleteIsConflict(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 1))
	f.cardRepo.On("SaveReview", mock.Anything, mock.Anything, 0.0).Return(true, nil)
	f.profileRepo.On("AddXP", mock.Anything, int64(1), mock.Anything).Return(int64(25), nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 0)
	require.NoError(t, err)

	_, err = f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 0)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestRestartSession(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 1))
	f.cardRepo.On("SaveReview", mock.Anything, mock.Anything, 0.0).Return(true, nil)
	f.profileRepo.On("AddXP", mock.Anything, int64(1), mock.Anything).Return(int64(25), nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = f.svc.Respond(context.Background(), 1, 2, models.ResponseCorrect, 0)
	require.NoError(t, err)

	view, err := f.svc.RestartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Position)
	assert.Equal(t, 1, view.TotalCards)
	assert.False(t, view.Empty)
}

func TestEndSessionDiscardsState(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.expectStart(1, 2, testCards(2, 2))

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NoError(t, f.svc.EndSession(context.Background(), 1, 2))

	_, err = f.svc.CurrentSession(context.Background(), 1, 2)
	require.Error(t, err)
}

func TestRetryPersist(t *testing.T) {
	f := newReviewServiceFixture(20)
	outcome := models.ReviewOutcome{ID: "abc", CardID: 1, DeckID: 2, ProfileID: 1, Response: models.ResponseCorrect}
	f.cardRepo.On("SaveReview", mock.Anything, outcome, 3.0).Return(false, nil)

	err := f.svc.RetryPersist(context.Background(), outcome, 3.0)
	require.NoError(t, err, "an already-applied outcome makes the retry a no-op")
}

func TestRetryPersist_RequiresID(t *testing.T) {
	f := newReviewServiceFixture(20)

	err := f.svc.RetryPersist(context.Background(), models.ReviewOutcome{}, 0)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestDailyCapsShrinkLimits(t *testing.T) {
	f := newReviewServiceFixture(20)
	f.deckRepo.On("Get", mock.Anything, int64(2)).Return(testDeck(1, 2), nil)
	// 4 graded reviews and 3 new introductions already today.
	f.cardRepo.On("DailyLoad", mock.Anything, int64(2), "2025-06-01").Return(4, 3, nil)
	f.cardRepo.On("DueCards", mock.Anything, int64(2), svcNow, 7, 96).Return(testCards(2, 1), nil)

	_, err := f.svc.StartSession(context.Background(), 1, 2)
	require.NoError(t, err)
	f.cardRepo.AssertExpectations(t)
}
