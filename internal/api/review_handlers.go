package api

import (
	"net/http"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ReviewService.StartSession(r.Context(), profile.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ReviewService.CurrentSession(r.Context(), profile.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Response    models.ReviewResponse `json:"response"`
		TimeSeconds float64               `json:"time_seconds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.Respond(r.Context(), profile.ID, deckID, req.Response, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ReviewService.RestartSession(r.Context(), profile.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ReviewService.Summary(r.Context(), profile.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ReviewService.EndSession(r.Context(), profile.ID, deckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

// handleRetryPersist re-submits an outcome whose first write failed. The
// outcome id makes the write idempotent, so duplicates are harmless.
func (s *Server) handleRetryPersist(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Outcome     models.ReviewOutcome `json:"outcome"`
		TimeSeconds float64              `json:"time_seconds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Outcome.ProfileID = profile.ID

	if err := s.ReviewService.RetryPersist(r.Context(), req.Outcome, req.TimeSeconds); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"persisted": true})
}
