package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/caredash/impactboard/pkg/aggregate"
)

type dashboardResponse struct {
	Stats       []aggregate.SummaryStat `json:"stats"`
	Series      []aggregate.MonthBucket `json:"series"`
	Rankings    aggregate.Rankings      `json:"rankings"`
	RefreshedAt string                  `json:"refreshedAt"`
}

type partnerDashboardResponse struct {
	dashboardResponse
	ActorAvailable bool `json:"actorAvailable"`
	OwnedPrograms  *int `json:"ownedPrograms"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, at := s.snapshot()
	writeJSON(w, dashboardResponse{
		Stats:       aggregate.StatCards(res),
		Series:      res.Series,
		Rankings:    res.Rankings,
		RefreshedAt: at.Format(time.RFC3339),
	})
}

// handlePartnerDashboard serves the owner-scoped view. When no actor
// identity resolved, ownedPrograms stays null and actorAvailable is
// false; the front-end must render "not available", not zero.
func (s *Server) handlePartnerDashboard(w http.ResponseWriter, r *http.Request) {
	res, at := s.snapshot()
	writeJSON(w, partnerDashboardResponse{
		dashboardResponse: dashboardResponse{
			Stats:       aggregate.StatCards(res),
			Series:      res.Series,
			Rankings:    res.Rankings,
			RefreshedAt: at.Format(time.RFC3339),
		},
		ActorAvailable: res.OwnedPrograms != nil,
		OwnedPrograms:  res.OwnedPrograms,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
