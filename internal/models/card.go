package models

import "time"

// CardState tracks a card's position in the spaced-repetition progression.
type CardState string

const (
	CardStateNew        CardState = "new"
	CardStateLearning   CardState = "learning"
	CardStateReview     CardState = "review"
	CardStateRelearning CardState = "relearning"
)

// Valid reports whether s is one of the four lifecycle states.
func (s CardState) Valid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning:
		return true
	}
	return false
}

// Schedule is the SM-2 scheduling state carried by a card. It is the unit
// the scheduler transforms and the part of a card the store persists after
// every review.
type Schedule struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	State        CardState `json:"state"`
	DueAt        time.Time `json:"due_at"`
}

type Card struct {
	ID     int64  `json:"id"`
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	Hint   string `json:"hint,omitempty"`
	Schedule
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	Suspended      bool       `json:"suspended"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CardFilter selects cards for listing queries.
type CardFilter struct {
	DeckID    int64
	State     CardState
	Suspended *bool
	DueBefore *time.Time
	Limit     int
	Offset    int
}
