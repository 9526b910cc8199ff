package models

import "time"

type Deck struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profile_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	NewPerDay     int       `json:"new_per_day"`
	ReviewsPerDay int       `json:"reviews_per_day"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeckCounts are the per-deck card counts shown on the deck list.
type DeckCounts struct {
	Due      int `json:"due"`
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
}

type DeckWithCounts struct {
	Deck
	Counts DeckCounts `json:"counts"`
}
