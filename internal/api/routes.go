package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/profiles", s.handleListProfiles)
	r.Post("/profiles", s.handleCreateProfile)

	// Everything below acts on behalf of a profile.
	r.Group(func(r chi.Router) {
		r.Use(s.profileMiddleware)

		r.Get("/profile", s.handleGetProfile)
		r.Delete("/profile", s.handleDeleteProfile)
		r.Get("/progress", s.handleGetProgress)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Put("/decks/{id}", s.handleUpdateDeck)
		r.Delete("/decks/{id}", s.handleDeleteDeck)

		r.Get("/decks/{id}/cards", s.handleListCards)
		r.Post("/decks/{id}/cards", s.handleCreateCard)
		r.Get("/cards/{id}", s.handleGetCard)
		r.Put("/cards/{id}", s.handleUpdateCard)
		r.Post("/cards/{id}/suspend", s.handleSuspendCard)
		r.Delete("/cards/{id}", s.handleDeleteCard)

		r.Post("/decks/{id}/session", s.handleStartSession)
		r.Get("/decks/{id}/session", s.handleCurrentSession)
		r.Post("/decks/{id}/session/respond", s.handleRespond)
		r.Post("/decks/{id}/session/restart", s.handleRestartSession)
		r.Get("/decks/{id}/session/summary", s.handleSessionSummary)
		r.Delete("/decks/{id}/session", s.handleEndSession)
		r.Post("/reviews/retry", s.handleRetryPersist)

		r.Get("/stats/daily", s.handleDailyStats)
		r.Get("/stats/overview", s.handleStatsOverview)

		r.Post("/coach/chat", s.handleCoachChat)
	})

	return r
}
