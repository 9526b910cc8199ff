package api

import (
	"net/http"
	"strconv"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

type cardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.CardFilter{DeckID: deckID}
	q := r.URL.Query()
	if state := q.Get("state"); state != "" {
		cs := models.CardState(state)
		if !cs.Valid() {
			handleError(w, r, errors.NewValidationError("state", "must be 'new', 'learning', 'review', or 'relearning'"))
			return
		}
		filter.State = cs
	}
	if raw := q.Get("suspended"); raw != "" {
		suspended, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("suspended", "must be a boolean"))
			return
		}
		filter.Suspended = &suspended
	}
	if raw := q.Get("limit"); raw != "" {
		if filter.Limit, err = strconv.Atoi(raw); err != nil || filter.Limit < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if filter.Offset, err = strconv.Atoi(raw); err != nil || filter.Offset < 0 {
			handleError(w, r, errors.NewValidationError("offset", "must be a non-negative integer"))
			return
		}
	}

	cards, err := s.CardService.ListCards(r.Context(), profile.ID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), profile.ID, deckID, req.Front, req.Back, req.Hint)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), profile.ID, cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), profile.ID, cardID, req.Front, req.Back, req.Hint)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleSuspendCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Suspended bool `json:"suspended"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.SuspendCard(r.Context(), profile.ID, cardID, req.Suspended); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"suspended": req.Suspended})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), profile.ID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
