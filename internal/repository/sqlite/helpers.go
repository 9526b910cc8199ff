package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// Helpers shared across repository implementations

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

const cardColumns = `id, deck_id, front, back, hint, ease_factor, interval_days, repetitions, state, due_at, last_reviewed_at, suspended, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner, c *models.Card) error {
	var lastReviewed sql.NullTime
	if err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Hint,
		&c.EaseFactor, &c.IntervalDays, &c.Repetitions, &c.State,
		&c.DueAt, &lastReviewed, &c.Suspended, &c.CreatedAt); err != nil {
		return err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewedAt = &t
	}
	return nil
}
