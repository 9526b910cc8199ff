package api

import (
	"database/sql"

	"github.com/SiphoYawe/Laurel-sub000/internal/services"
)

// Server holds the HTTP surface's dependencies, injected from main.
type Server struct {
	DB             *sql.DB
	ProfileService services.ProfileService
	DeckService    services.DeckService
	CardService    services.CardService
	ReviewService  services.ReviewService
	StatsService   services.StatsService
	CoachService   services.CoachService
}
