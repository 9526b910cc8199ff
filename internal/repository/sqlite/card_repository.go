package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	if err := scanCard(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found: id=%d", id)
			return nil, nil
		}
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d, state=%s", filter.DeckID, filter.State)

	query := sqlBuilder.Select(
		"id", "deck_id", "front", "back", "hint", "ease_factor", "interval_days",
		"repetitions", "state", "due_at", "last_reviewed_at", "suspended", "created_at",
	).From("cards")

	// Dynamic WHERE clauses
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.State != "" {
		query = query.Where(squirrel.Eq{"state": filter.State})
	}
	if filter.Suspended != nil {
		query = query.Where(squirrel.Eq{"suspended": *filter.Suspended})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"due_at": *filter.DueBefore})
	}

	query = query.OrderBy("due_at ASC, id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, hint, ease_factor, interval_days, repetitions, state, due_at, suspended)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, c.Hint, c.EaseFactor, c.IntervalDays, c.Repetitions, c.State, c.DueAt, c.Suspended)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) UpdateContent(ctx context.Context, id int64, front, back, hint string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET front = ?, back = ?, hint = ? WHERE id = ?`,
		front, back, hint, id)
	if err != nil {
		log.Error("failed to update card content: %v", err)
	}
	return err
}

func (r *cardRepository) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("setting card suspended: id=%d, suspended=%v", id, suspended)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET suspended = ? WHERE id = ?`, suspended, id)
	if err != nil {
		log.Error("failed to set suspended: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

func (r *cardRepository) DueCards(ctx context.Context, deckID int64, now time.Time, newLimit, reviewLimit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: deck_id=%d, new_limit=%d, review_limit=%d", deckID, newLimit, reviewLimit)

	var cards []models.Card

	if reviewLimit > 0 {
		reviews, err := r.dueByStates(ctx, deckID, now,
			[]models.CardState{models.CardStateLearning, models.CardStateRelearning, models.CardStateReview}, reviewLimit)
		if err != nil {
			return nil, err
		}
		cards = append(cards, reviews...)
	}

	if newLimit > 0 {
		fresh, err := r.dueByStates(ctx, deckID, now, []models.CardState{models.CardStateNew}, newLimit)
		if err != nil {
			return nil, err
		}
		cards = append(cards, fresh...)
	}

	log.Debug("found %d due cards", len(cards))
	return cards, nil
}

func (r *cardRepository) dueByStates(ctx context.Context, deckID int64, now time.Time, states []models.CardState, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := sqlBuilder.Select(
		"id", "deck_id", "front", "back", "hint", "ease_factor", "interval_days",
		"repetitions", "state", "due_at", "last_reviewed_at", "suspended", "created_at",
	).From("cards").
		Where(squirrel.Eq{"deck_id": deckID, "suspended": false, "state": states}).
		Where(squirrel.LtOrEq{"due_at": now}).
		OrderBy("due_at ASC, id ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			log.Error("failed to scan due card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) DailyLoad(ctx context.Context, deckID int64, day string) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("computing daily load: deck_id=%d, day=%s", deckID, day)

	var reviewed, newCards int
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(CASE WHEN response != 'skipped' THEN 1 END),
    COUNT(CASE WHEN response != 'skipped' AND state_before = 'new' THEN 1 END)
FROM review_history
WHERE deck_id = ? AND date(reviewed_at) = ?
`, deckID, day).Scan(&reviewed, &newCards)
	if err != nil {
		log.Error("failed to compute daily load: %v", err)
		return 0, 0, err
	}
	return reviewed, newCards, nil
}

func (r *cardRepository) SaveReview(ctx context.Context, o models.ReviewOutcome, timeSeconds float64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("saving review: outcome_id=%s, card_id=%d, response=%s", o.ID, o.CardID, o.Response)

	applied := false
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		var quality any
		if o.Response != models.ResponseSkipped {
			quality = o.Quality
		}
		res, err := t.ExecContext(ctx, `
INSERT OR IGNORE INTO review_history (
    id, card_id, deck_id, profile_id, response, quality,
    ease_before, interval_before, repetitions_before, state_before, due_before,
    ease_after, interval_after, repetitions_after, state_after, due_after,
    reviewed_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, o.ID, o.CardID, o.DeckID, o.ProfileID, o.Response, quality,
			o.Before.EaseFactor, o.Before.IntervalDays, o.Before.Repetitions, o.Before.State, o.Before.DueAt,
			o.After.EaseFactor, o.After.IntervalDays, o.After.Repetitions, o.After.State, o.After.DueAt,
			o.ReviewedAt)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Retried write: the outcome was already applied.
			log.Debug("review already persisted: outcome_id=%s", o.ID)
			return nil
		}
		applied = true

		// Skips leave the card row untouched.
		if o.Response != models.ResponseSkipped {
			if _, err := t.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetitions = ?, state = ?, due_at = ?, last_reviewed_at = ?
WHERE id = ?
`, o.After.EaseFactor, o.After.IntervalDays, o.After.Repetitions, o.After.State, o.After.DueAt, o.ReviewedAt, o.CardID); err != nil {
				return err
			}
		}

		return upsertDailyStat(ctx, t, o, timeSeconds)
	})
	if err != nil {
		log.Error("failed to save review: %v", err)
		return false, err
	}
	return applied, nil
}

// upsertDailyStat folds one outcome into the per-day rollup inside the same
// transaction as the review write, keeping streak and accuracy queries O(days)
// instead of O(reviews).
func upsertDailyStat(ctx context.Context, t *sql.Tx, o models.ReviewOutcome, timeSeconds float64) error {
	day := o.ReviewedAt.UTC().Format("2006-01-02")

	newCards := 0
	if o.Response != models.ResponseSkipped && o.Before.State == models.CardStateNew {
		newCards = 1
	}
	relearned := 0
	if o.After.State == models.CardStateRelearning {
		relearned = 1
	}
	correct := 0
	if o.Response == models.ResponseCorrect {
		correct = 1
	}
	wrong := 0
	if o.Response == models.ResponseWrong {
		wrong = 1
	}

	_, err := t.ExecContext(ctx, `
INSERT INTO daily_stats (profile_id, day, cards_reviewed, new_cards, relearned, correct, wrong, time_seconds)
VALUES (?, ?, 1, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id, day) DO UPDATE SET
    cards_reviewed = cards_reviewed + 1,
    new_cards = new_cards + excluded.new_cards,
    relearned = relearned + excluded.relearned,
    correct = correct + excluded.correct,
    wrong = wrong + excluded.wrong,
    time_seconds = time_seconds + excluded.time_seconds
`, o.ProfileID, day, newCards, relearned, correct, wrong, timeSeconds)
	return err
}
