package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, name, description, new_per_day, reviews_per_day, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.ProfileID, &d.Name, &d.Description, &d.NewPerDay, &d.ReviewsPerDay, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, profileID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, name, description, new_per_day, reviews_per_day, created_at
FROM decks
WHERE profile_id = ?
ORDER BY name ASC
`, profileID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.ProfileID, &d.Name, &d.Description, &d.NewPerDay, &d.ReviewsPerDay, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: profile_id=%d, name=%s", d.ProfileID, d.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (profile_id, name, description, new_per_day, reviews_per_day)
VALUES (?, ?, ?, ?, ?)
`, d.ProfileID, d.Name, d.Description, d.NewPerDay, d.ReviewsPerDay)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", d.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, new_per_day = ?, reviews_per_day = ?
WHERE id = ?
`, d.Name, d.Description, d.NewPerDay, d.ReviewsPerDay, d.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}

func (r *deckRepository) Counts(ctx context.Context, deckID int64, now time.Time) (*models.DeckCounts, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("counting deck cards: deck_id=%d", deckID)

	var c models.DeckCounts
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(CASE WHEN due_at <= ? AND suspended = 0 THEN 1 END) AS due,
    COUNT(CASE WHEN state = 'new' THEN 1 END) AS new,
    COUNT(CASE WHEN state IN ('learning', 'relearning') THEN 1 END) AS learning,
    COUNT(CASE WHEN state = 'review' THEN 1 END) AS review
FROM cards
WHERE deck_id = ?
`, now, deckID).Scan(&c.Due, &c.New, &c.Learning, &c.Review)
	if err != nil {
		log.Error("failed to count deck cards: %v", err)
		return nil, err
	}
	return &c, nil
}
