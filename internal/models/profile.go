package models

import "time"

type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	XP        int64     `json:"xp"`
	CreatedAt time.Time `json:"created_at"`
}
