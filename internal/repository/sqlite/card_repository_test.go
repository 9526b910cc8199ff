package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository/sqlite"
	"github.com/SiphoYawe/Laurel-sub000/internal/srs"
	"github.com/SiphoYawe/Laurel-sub000/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
	now  time.Time
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) setupProfileAndDeck() (int64, int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO profiles (username) VALUES (?)`, "testuser")
	s.Require().NoError(err)
	profileID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO decks (profile_id, name) VALUES (?, ?)`, profileID, "Spanish")
	s.Require().NoError(err)
	deckID, err := res.LastInsertId()
	s.Require().NoError(err)

	return profileID, deckID
}

func (s *CardRepositorySuite) insertCard(deckID int64, sched models.Schedule, suspended bool) int64 {
	id, err := s.repo.Insert(context.Background(), models.Card{
		DeckID:    deckID,
		Front:     "hola",
		Back:      "hello",
		Schedule:  sched,
		Suspended: suspended,
	})
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	_, deckID := s.setupProfileAndDeck()

	id := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	card, err := s.repo.Get(context.Background(), id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("hola", card.Front)
	s.Assert().Equal(models.CardStateNew, card.State)
	s.Assert().Equal(2.5, card.EaseFactor)
	s.Assert().Nil(card.LastReviewedAt)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	card, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func (s *CardRepositorySuite) TestListFiltersByState() {
	_, deckID := s.setupProfileAndDeck()

	s.insertCard(deckID, srs.NewCardSchedule(s.now), false)
	s.insertCard(deckID, models.Schedule{
		EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2,
		State: models.CardStateReview, DueAt: s.now,
	}, false)

	cards, err := s.repo.List(context.Background(), models.CardFilter{
		DeckID: deckID,
		State:  models.CardStateReview,
	})
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal(models.CardStateReview, cards[0].State)
}

func (s *CardRepositorySuite) TestDueCards_OrderAndCaps() {
	_, deckID := s.setupProfileAndDeck()

	// Two overdue review cards, oldest due first.
	older := s.insertCard(deckID, models.Schedule{
		EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2,
		State: models.CardStateReview, DueAt: s.now.AddDate(0, 0, -3),
	}, false)
	newer := s.insertCard(deckID, models.Schedule{
		EaseFactor: 2.5, IntervalDays: 3, Repetitions: 2,
		State: models.CardStateReview, DueAt: s.now.AddDate(0, 0, -1),
	}, false)

	// Two new cards and one not yet due.
	first := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)
	s.insertCard(deckID, srs.NewCardSchedule(s.now), false)
	s.insertCard(deckID, models.Schedule{
		EaseFactor: 2.5, IntervalDays: 10, Repetitions: 3,
		State: models.CardStateReview, DueAt: s.now.AddDate(0, 0, 5),
	}, false)

	cards, err := s.repo.DueCards(context.Background(), deckID, s.now, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(cards, 3, "2 due reviews + 1 new (capped)")

	s.Assert().Equal(older, cards[0].ID, "review cards come first, oldest due first")
	s.Assert().Equal(newer, cards[1].ID)
	s.Assert().Equal(first, cards[2].ID, "new cards follow, capped at newLimit")
}

func (s *CardRepositorySuite) TestDueCards_ZeroLimitsYieldNothing() {
	_, deckID := s.setupProfileAndDeck()
	s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	cards, err := s.repo.DueCards(context.Background(), deckID, s.now, 0, 0)
	s.Require().NoError(err)
	s.Assert().Empty(cards)
}

func (s *CardRepositorySuite) TestDueCards_ExcludesSuspended() {
	_, deckID := s.setupProfileAndDeck()
	s.insertCard(deckID, srs.NewCardSchedule(s.now), true)

	cards, err := s.repo.DueCards(context.Background(), deckID, s.now, 10, 10)
	s.Require().NoError(err)
	s.Assert().Empty(cards)
}

func (s *CardRepositorySuite) outcomeFor(profileID, deckID, cardID int64, resp models.ReviewResponse) models.ReviewOutcome {
	before := srs.NewCardSchedule(s.now)
	after := before
	quality := -1
	switch resp {
	case models.ResponseCorrect:
		quality = srs.QualityPerfect
		var err error
		after, err = srs.ComputeNextSchedule(s.now, quality, before)
		s.Require().NoError(err)
	case models.ResponseWrong:
		quality = srs.QualityIncorrect
		var err error
		after, err = srs.ComputeNextSchedule(s.now, quality, before)
		s.Require().NoError(err)
	}

	return models.ReviewOutcome{
		ID:         "outcome-" + string(resp),
		CardID:     cardID,
		DeckID:     deckID,
		ProfileID:  profileID,
		Response:   resp,
		Quality:    quality,
		Before:     before,
		After:      after,
		ReviewedAt: s.now,
	}
}

func (s *CardRepositorySuite) TestSaveReview_AppliesScheduleAndRollup() {
	ctx := context.Background()
	profileID, deckID := s.setupProfileAndDeck()
	cardID := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	outcome := s.outcomeFor(profileID, deckID, cardID, models.ResponseCorrect)

	applied, err := s.repo.SaveReview(ctx, outcome, 4.5)
	s.Require().NoError(err)
	s.Assert().True(applied)

	card, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Equal(models.CardStateReview, card.State)
	s.Assert().Equal(1, card.IntervalDays)
	s.Assert().Equal(2.6, card.EaseFactor)
	s.Require().NotNil(card.LastReviewedAt)

	var reviewed, newCards, correct int
	err = s.db.QueryRowContext(ctx, `
SELECT cards_reviewed, new_cards, correct FROM daily_stats WHERE profile_id = ? AND day = ?
`, profileID, "2025-06-01").Scan(&reviewed, &newCards, &correct)
	s.Require().NoError(err)
	s.Assert().Equal(1, reviewed)
	s.Assert().Equal(1, newCards)
	s.Assert().Equal(1, correct)
}

func (s *CardRepositorySuite) TestSaveReview_IsIdempotent() {
	ctx := context.Background()
	profileID, deckID := s.setupProfileAndDeck()
	cardID := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	outcome := s.outcomeFor(profileID, deckID, cardID, models.ResponseCorrect)

	applied, err := s.repo.SaveReview(ctx, outcome, 4.5)
	s.Require().NoError(err)
	s.Assert().True(applied)

	// Same outcome id retried: no double counting.
	applied, err = s.repo.SaveReview(ctx, outcome, 4.5)
	s.Require().NoError(err)
	s.Assert().False(applied, "retried write must report already applied")

	var reviewed int
	err = s.db.QueryRowContext(ctx,
		`SELECT cards_reviewed FROM daily_stats WHERE profile_id = ? AND day = ?`,
		profileID, "2025-06-01").Scan(&reviewed)
	s.Require().NoError(err)
	s.Assert().Equal(1, reviewed)
}

func (s *CardRepositorySuite) TestSaveReview_SkipLeavesCardUntouched() {
	ctx := context.Background()
	profileID, deckID := s.setupProfileAndDeck()
	sched := models.Schedule{
		EaseFactor: 2.2, IntervalDays: 9, Repetitions: 4,
		State: models.CardStateReview, DueAt: s.now.AddDate(0, 0, -2),
	}
	cardID := s.insertCard(deckID, sched, false)

	outcome := models.ReviewOutcome{
		ID:         "outcome-skip",
		CardID:     cardID,
		DeckID:     deckID,
		ProfileID:  profileID,
		Response:   models.ResponseSkipped,
		Quality:    -1,
		Before:     sched,
		After:      sched,
		ReviewedAt: s.now,
	}

	applied, err := s.repo.SaveReview(ctx, outcome, 1.0)
	s.Require().NoError(err)
	s.Assert().True(applied)

	card, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Equal(9, card.IntervalDays, "skip must not change the interval")
	s.Assert().Equal(4, card.Repetitions)
	s.Assert().Nil(card.LastReviewedAt, "skip must not stamp a review time")

	var quality sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT quality FROM review_history WHERE id = ?`, outcome.ID).Scan(&quality)
	s.Require().NoError(err)
	s.Assert().False(quality.Valid, "skips store NULL quality")
}

func (s *CardRepositorySuite) TestDailyLoad() {
	ctx := context.Background()
	profileID, deckID := s.setupProfileAndDeck()
	cardID := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	correct := s.outcomeFor(profileID, deckID, cardID, models.ResponseCorrect)
	_, err := s.repo.SaveReview(ctx, correct, 2)
	s.Require().NoError(err)

	skip := s.outcomeFor(profileID, deckID, cardID, models.ResponseSkipped)
	_, err = s.repo.SaveReview(ctx, skip, 1)
	s.Require().NoError(err)

	reviewed, newCards, err := s.repo.DailyLoad(ctx, deckID, "2025-06-01")
	s.Require().NoError(err)
	s.Assert().Equal(1, reviewed, "skips do not count against the daily load")
	s.Assert().Equal(1, newCards)
}

func (s *CardRepositorySuite) TestSuspendAndDelete() {
	ctx := context.Background()
	_, deckID := s.setupProfileAndDeck()
	cardID := s.insertCard(deckID, srs.NewCardSchedule(s.now), false)

	s.Require().NoError(s.repo.SetSuspended(ctx, cardID, true))
	card, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().True(card.Suspended)

	s.Require().NoError(s.repo.Delete(ctx, cardID))
	card, err = s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
