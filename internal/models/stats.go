package models

// DailyStat is the per-profile, per-day rollup updated transactionally with
// every persisted review, so streaks and accuracy never need a history scan.
// Day is a calendar date in YYYY-MM-DD form.
type DailyStat struct {
	ProfileID     int64   `json:"profile_id"`
	Day           string  `json:"day"`
	CardsReviewed int     `json:"cards_reviewed"`
	NewCards      int     `json:"new_cards"`
	Relearned     int     `json:"relearned"`
	Correct       int     `json:"correct"`
	Wrong         int     `json:"wrong"`
	TimeSeconds   float64 `json:"time_seconds"`
}

// StatsOverview aggregates the rollup rows for the stats screen.
type StatsOverview struct {
	TotalReviews int `json:"total_reviews"`
	Correct      int `json:"correct"`
	Wrong        int `json:"wrong"`
	Accuracy     int `json:"accuracy"`
	StreakDays   int `json:"streak_days"`
}
