package api

import (
	"net/http"
)

func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	reply, err := s.CoachService.Chat(r.Context(), profile.ID, req.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"reply": reply})
}
