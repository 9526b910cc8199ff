package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleDailyStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, _ = strconv.Atoi(raw)
	}

	stats, err := s.StatsService.GetDailyStats(r.Context(), profile.ID, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	overview, err := s.StatsService.GetOverview(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, overview)
}
