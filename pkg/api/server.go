// Package api pkg/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	httpx "github.com/mfreeman451/camrelay/pkg/http"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 10 * time.Second
)

// APIServer serves relay status as JSON.
type APIServer struct {
	addr     string
	provider StatusProvider
	router   *mux.Router

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// NewAPIServer creates an API server for provider that will listen on addr.
func NewAPIServer(addr string, provider StatusProvider) *APIServer {
	s := &APIServer{
		addr:     addr,
		provider: provider,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/sessions", s.getSessions).Methods(http.MethodGet)
	s.router.HandleFunc("/api/sessions/latest", s.getLatestSession).Methods(http.MethodGet)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.provider.Status())
}

// getSessions returns finished sessions, newest first. ?limit=N trims the list.
func (s *APIServer) getSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.provider.Sessions()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		if limit < len(sessions) {
			sessions = sessions[:limit]
		}
	}

	writeJSON(w, sessions)
}

func (s *APIServer) getLatestSession(w http.ResponseWriter, _ *http.Request) {
	latest := s.provider.LatestSession()
	if latest == nil {
		http.Error(w, "No sessions recorded", http.StatusNotFound)
		return
	}

	writeJSON(w, latest)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Listen binds the API address.
func (s *APIServer) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.listener = lis
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *APIServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Start serves until Stop is called.
func (s *APIServer) Start(_ context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	srv, lis := s.srv, s.listener
	s.mu.Unlock()

	log.Printf("Status API listening on %s", lis.Addr())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status API: %w", err)
	}

	return nil
}

// Stop gracefully shuts the server down.
func (s *APIServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}
