// Package web serves the dashboard JSON API.
package web

import (
	"fmt"
	"net/http"

	"github.com/Uraniumking007/frametracking/internal/feature"
)

// Server serves the resolved world-state API.
type Server struct {
	Features *feature.Service
	Addr     string
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.mux())
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/worldstate", s.handleWorldState)
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/invasions", s.handleInvasions)
	mux.HandleFunc("/api/sortie", s.handleSortie)
	mux.HandleFunc("/api/archon-hunt", s.handleArchonHunt)
	mux.HandleFunc("/api/fissures", s.handleFissures)
	mux.HandleFunc("/api/arbitration", s.handleArbitration)
	mux.HandleFunc("/api/incursions", s.handleIncursions)
	mux.HandleFunc("/api/bounties", s.handleBounties)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/cycles", s.handleCycles)

	return mux
}
