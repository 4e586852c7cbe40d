// Package server provides the HTTP server for the deckhand control surface.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/renderix/deckhand/internal/app"
	"github.com/renderix/deckhand/internal/capture"
	"github.com/renderix/deckhand/internal/control"
	"github.com/renderix/deckhand/internal/server/api"
	"github.com/renderix/deckhand/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	App       *app.App
}

// Server represents the HTTP server for the deckhand application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)

	if s.config.Store != nil {
		mappingHandler := api.NewMappingHandler(s.config.Store)
		s.mux.Handle("/api/mappings", mappingHandler)
		s.mux.Handle("/api/mappings/", mappingHandler)

		eventsHandler := api.NewEventsHandler(s.config.Store)
		s.mux.Handle("/api/events/recent", eventsHandler)
	}

	// Register camera stream endpoint if a camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Live control-event feed for the overlay, fed by the pipeline
	s.events = NewEventsHandler()
	s.mux.Handle("/api/events", s.events)
	if s.config.App != nil {
		s.config.App.OnEvents(s.events.Publish)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Events returns the live control-event broadcaster.
func (s *Server) Events() *EventsHandler {
	return s.events
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

type deckStatus struct {
	Playing     bool `json:"playing"`
	PinchActive bool `json:"pinch_active"`
}

// handleStatus handles GET requests to /api/status with the current deck and
// pipeline state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"uptime": time.Since(s.start).String(),
	}

	if s.config.App != nil {
		response["enabled"] = s.config.App.IsEnabled()

		decks := make(map[string]deckStatus, len(control.Decks))
		for _, deck := range control.Decks {
			state := s.config.App.Mapper().State(deck)
			decks[string(deck)] = deckStatus{
				// PrevFist doubles as "a fist is currently held"
				Playing:     state.PrevFist,
				PinchActive: state.PinchActive,
			}
		}
		response["decks"] = decks
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
