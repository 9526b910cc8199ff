package repository

import (
	"context"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// CardRepository is the Card Store Adapter: it selects due cards for the
// review engine and persists the scheduling state the engine produces.
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	UpdateContent(ctx context.Context, id int64, front, back, hint string) error
	SetSuspended(ctx context.Context, id int64, suspended bool) error
	Delete(ctx context.Context, id int64) error

	// DueCards returns the ordered batch for a sitting: non-suspended cards
	// with due_at <= now, review-type cards first (oldest due first) capped
	// at reviewLimit, then new cards capped at newLimit. A limit <= 0 yields
	// none of that kind.
	DueCards(ctx context.Context, deckID int64, now time.Time, newLimit, reviewLimit int) ([]models.Card, error)

	// DailyLoad reports how many graded reviews and how many new-card
	// introductions a deck has already absorbed on the given day, so the
	// per-day intake caps can be applied when selecting due cards.
	DailyLoad(ctx context.Context, deckID int64, day string) (reviewed, newCards int, err error)

	// SaveReview persists one review outcome atomically: the outcome row,
	// the card's updated scheduling fields, and the daily rollup increment.
	// The write is idempotent on outcome.ID; the returned bool is false when
	// the outcome had already been applied.
	SaveReview(ctx context.Context, outcome models.ReviewOutcome, timeSeconds float64) (bool, error)
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, profileID int64) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id int64) error
	Counts(ctx context.Context, deckID int64, now time.Time) (*models.DeckCounts, error)
}

// StatsRepository reads the daily rollups and rebuilds them from history.
type StatsRepository interface {
	Day(ctx context.Context, profileID int64, day string) (*models.DailyStat, error)
	Range(ctx context.Context, profileID int64, fromDay, toDay string) ([]models.DailyStat, error)
	Overview(ctx context.Context, profileID int64, today string) (*models.StatsOverview, error)

	// ReconcileDay recomputes one rollup row from review_history, correcting
	// any drift the incremental path may have accumulated.
	ReconcileDay(ctx context.Context, profileID int64, day string) error
}

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, username string) (*models.Profile, error)
	AddXP(ctx context.Context, id int64, delta int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
