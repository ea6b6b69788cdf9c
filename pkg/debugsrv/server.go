// Package debugsrv serves a local HTTP endpoint with the client's health
// and current view snapshot, useful when debugging a desynced table.
package debugsrv

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/layout"
)

// Server is the optional local debug listener.
type Server struct {
	view       *gameview.View
	httpServer *http.Server
	log        zerolog.Logger
}

// New wires the debug routes for a view. addr is the listen address, e.g.
// "127.0.0.1:8585".
func New(view *gameview.View, addr string, log zerolog.Logger) *Server {
	s := &Server{view: view, log: log}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	router.HandleFunc("/layout", s.handleLayout).Methods(http.MethodGet)

	s.httpServer = &http.Server{Addr: addr, Handler: router}
	return s
}

// Start serves until Close. Blocks; run it in a goroutine.
func (s *Server) Start() error {
	s.log.Info().Str("address", s.httpServer.Addr).Msg("debug server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the listener.
func (s *Server) Close() error {
	return s.httpServer.Close()
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok","service":"tableview"}`))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.view.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("encode state snapshot")
	}
}

// handleLayout places the current seating around an ellipse. Width and
// height come from query params so a frontend can ask for its own container
// size; defaults fit a 1280x720 canvas.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	width := cast.ToInt(r.URL.Query().Get("width"))
	if width <= 0 {
		width = 1280
	}
	height := cast.ToInt(r.URL.Query().Get("height"))
	if height <= 0 {
		height = 720
	}

	snap := s.view.Snapshot()
	seats := layout.Positions(snap.Seating, snap.SelfID, width, height)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(seats); err != nil {
		s.log.Error().Err(err).Msg("encode layout")
	}
}
