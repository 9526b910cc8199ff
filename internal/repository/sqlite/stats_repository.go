package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

const dayFormat = "2006-01-02"

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Day(ctx context.Context, profileID int64, day string) (*models.DailyStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting daily stat: profile_id=%d, day=%s", profileID, day)

	var s models.DailyStat
	err := r.db.QueryRowContext(ctx, `
SELECT profile_id, day, cards_reviewed, new_cards, relearned, correct, wrong, time_seconds
FROM daily_stats
WHERE profile_id = ? AND day = ?
`, profileID, day).Scan(&s.ProfileID, &s.Day, &s.CardsReviewed, &s.NewCards, &s.Relearned, &s.Correct, &s.Wrong, &s.TimeSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get daily stat: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Range(ctx context.Context, profileID int64, fromDay, toDay string) ([]models.DailyStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting daily stats range: profile_id=%d, from=%s, to=%s", profileID, fromDay, toDay)

	rows, err := r.db.QueryContext(ctx, `
SELECT profile_id, day, cards_reviewed, new_cards, relearned, correct, wrong, time_seconds
FROM daily_stats
WHERE profile_id = ? AND day >= ? AND day <= ?
ORDER BY day ASC
`, profileID, fromDay, toDay)
	if err != nil {
		log.Error("failed to query daily stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		if err := rows.Scan(&s.ProfileID, &s.Day, &s.CardsReviewed, &s.NewCards, &s.Relearned, &s.Correct, &s.Wrong, &s.TimeSeconds); err != nil {
			log.Error("failed to scan daily stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) Overview(ctx context.Context, profileID int64, today string) (*models.StatsOverview, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing stats overview: profile_id=%d", profileID)

	var o models.StatsOverview
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(cards_reviewed), 0), COALESCE(SUM(correct), 0), COALESCE(SUM(wrong), 0)
FROM daily_stats
WHERE profile_id = ?
`, profileID).Scan(&o.TotalReviews, &o.Correct, &o.Wrong)
	if err != nil {
		log.Error("failed to sum daily stats: %v", err)
		return nil, err
	}

	if graded := o.Correct + o.Wrong; graded > 0 {
		o.Accuracy = int(math.Round(float64(o.Correct) / float64(graded) * 100))
	}

	streak, err := r.streak(ctx, profileID, today)
	if err != nil {
		return nil, err
	}
	o.StreakDays = streak
	return &o, nil
}

// streak counts consecutive active days ending today or yesterday; a streak
// survives until a full calendar day passes with no reviews.
func (r *statsRepository) streak(ctx context.Context, profileID int64, today string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT day FROM daily_stats
WHERE profile_id = ? AND cards_reviewed > 0 AND day <= ?
ORDER BY day DESC
LIMIT 366
`, profileID, today)
	if err != nil {
		log.Error("failed to query streak days: %v", err)
		return 0, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	anchor, err := time.Parse(dayFormat, today)
	if err != nil {
		return 0, err
	}
	latest, err := time.Parse(dayFormat, days[0])
	if err != nil {
		return 0, err
	}
	gap := int(anchor.Sub(latest).Hours() / 24)
	if gap > 1 {
		return 0, nil
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		cur, err := time.Parse(dayFormat, d)
		if err != nil {
			return 0, err
		}
		if int(prev.Sub(cur).Hours()/24) != 1 {
			break
		}
		streak++
		prev = cur
	}
	return streak, nil
}

func (r *statsRepository) ReconcileDay(ctx context.Context, profileID int64, day string) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("reconciling daily stat: profile_id=%d, day=%s", profileID, day)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		var s models.DailyStat
		err := t.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COUNT(CASE WHEN response != 'skipped' AND state_before = 'new' THEN 1 END),
    COUNT(CASE WHEN state_after = 'relearning' THEN 1 END),
    COUNT(CASE WHEN response = 'correct' THEN 1 END),
    COUNT(CASE WHEN response = 'wrong' THEN 1 END)
FROM review_history
WHERE profile_id = ? AND date(reviewed_at) = ?
`, profileID, day).Scan(&s.CardsReviewed, &s.NewCards, &s.Relearned, &s.Correct, &s.Wrong)
		if err != nil {
			return err
		}

		if s.CardsReviewed == 0 {
			_, err := t.ExecContext(ctx, `DELETE FROM daily_stats WHERE profile_id = ? AND day = ?`, profileID, day)
			return err
		}

		_, err = t.ExecContext(ctx, `
INSERT INTO daily_stats (profile_id, day, cards_reviewed, new_cards, relearned, correct, wrong)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id, day) DO UPDATE SET
    cards_reviewed = excluded.cards_reviewed,
    new_cards = excluded.new_cards,
    relearned = excluded.relearned,
    correct = excluded.correct,
    wrong = excluded.wrong
`, profileID, day, s.CardsReviewed, s.NewCards, s.Relearned, s.Correct, s.Wrong)
		return err
	})
}
