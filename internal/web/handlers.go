package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Uraniumking007/frametracking/internal/feature"
	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

func platformOf(r *http.Request) worldstate.Platform {
	return worldstate.ValidatePlatform(r.URL.Query().Get("platform"))
}

func (s *Server) handleWorldState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Features.World.Fetch(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.Features.Alerts(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, alerts)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.Features.Events(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, events)
}

func (s *Server) handleInvasions(w http.ResponseWriter, r *http.Request) {
	invasions, err := s.Features.Invasions(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, invasions)
}

func (s *Server) handleSortie(w http.ResponseWriter, r *http.Request) {
	sortie, err := s.Features.Sortie(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sortie)
}

func (s *Server) handleArchonHunt(w http.ResponseWriter, r *http.Request) {
	hunt, err := s.Features.ArchonHunt(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, hunt)
}

func (s *Server) handleFissures(w http.ResponseWriter, r *http.Request) {
	kind := feature.ParseFissureKind(r.URL.Query().Get("type"))
	fissures, err := s.Features.Fissures(r.Context(), platformOf(r), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("sort") == "tier" {
		omniaFirst := r.URL.Query().Get("omniaFirst") == "true"
		fissures = feature.SortFissuresByTier(fissures, omniaFirst)
	}
	writeJSON(w, fissures)
}

func (s *Server) handleArbitration(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.Features.Arbitration(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, schedule)
}

func (s *Server) handleIncursions(w http.ResponseWriter, r *http.Request) {
	incursions, err := s.Features.Incursions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, incursions)
}

func (s *Server) handleBounties(w http.ResponseWriter, r *http.Request) {
	bounties, err := s.Features.Bounties(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, bounties)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	news, err := s.Features.News(r.Context(), platformOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, news)
}

func (s *Server) handleCycles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, feature.ZoneCycles(time.Now()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS — the dashboard frontend is served from elsewhere.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports upstream failures as a bad gateway; everything the
// API serves is derived from upstream data.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
