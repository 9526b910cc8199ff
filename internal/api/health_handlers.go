package api

import (
	"net/http"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness, which for this service means the database
// answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
