package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/hasta/internal/capture"
	"github.com/ayusman/hasta/internal/feed"
	"github.com/ayusman/hasta/internal/server/api"
	"github.com/ayusman/hasta/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Feed      *feed.Controller
	Hub       *FeedHub

	// OnDeckChange is invoked after panel mutations so the running feed
	// controller can reload the deck. May be nil.
	OnDeckChange func()
}

// Server represents the HTTP server for the hasta daemon.
type Server struct {
	config Config
	mux    *http.ServeMux
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

	if s.config.Store != nil {
		panelsHandler := api.NewPanelsHandler(s.config.Store, s.config.OnDeckChange)
		s.mux.Handle("/api/panels", panelsHandler)
		s.mux.Handle("/api/panels/", panelsHandler)
	}

	if s.config.Feed != nil {
		feedHandler := api.NewFeedHandler(s.config.Feed)

		// Route /api/feed/ws to the hub, everything else under
		// /api/feed to the feed handler.
		feedRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/ws") && s.config.Hub != nil {
				s.config.Hub.ServeHTTP(w, r)
				return
			}
			feedHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/feed", feedRouter)
		s.mux.Handle("/api/feed/", feedRouter)
	}

	// Camera preview stream
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Serve the feed page if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
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

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
