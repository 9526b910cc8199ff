package models

import "time"

// ReviewResponse is the user's answer classification for one card.
type ReviewResponse string

const (
	ResponseCorrect ReviewResponse = "correct"
	ResponseWrong   ReviewResponse = "wrong"
	ResponseSkipped ReviewResponse = "skipped"
)

// Valid reports whether r is one of the three response classifications.
func (r ReviewResponse) Valid() bool {
	switch r {
	case ResponseCorrect, ResponseWrong, ResponseSkipped:
		return true
	}
	return false
}

// ReviewOutcome is the immutable record of one review. ID doubles as the
// idempotency key for at-least-once persistence, so retrying a failed write
// never double-counts the review.
//
// Quality is -1 for skipped responses, which never reach the scheduler.
type ReviewOutcome struct {
	ID         string         `json:"id"`
	CardID     int64          `json:"card_id"`
	DeckID     int64          `json:"deck_id"`
	ProfileID  int64          `json:"profile_id"`
	Response   ReviewResponse `json:"response"`
	Quality    int            `json:"quality"`
	Before     Schedule       `json:"before"`
	After      Schedule       `json:"after"`
	ReviewedAt time.Time      `json:"reviewed_at"`
}

// SessionSummary is the terminal aggregate derived when the last card in a
// session is resolved. Immutable once produced.
type SessionSummary struct {
	TotalCards   int             `json:"total_cards"`
	CorrectCount int             `json:"correct_count"`
	WrongCount   int             `json:"wrong_count"`
	SkippedCount int             `json:"skipped_count"`
	Accuracy     int             `json:"accuracy"`
	MasteryGain  int             `json:"mastery_gain"`
	Outcomes     []ReviewOutcome `json:"outcomes"`
}
