package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/gearshift/internal/db"
	"github.com/jonathan/gearshift/internal/gcal"
	"github.com/jonathan/gearshift/internal/ocr"
	"github.com/jonathan/gearshift/internal/schedule"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	recognizer ocr.Client
	parser     *schedule.Parser
	oauthFlow  *gcal.OAuthFlow // nil when Google credentials are not configured
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Model       string
	ParserOpts  *schedule.Options
	Google      gcal.AuthConfig
}

// New creates a new server instance
func New(ctx context.Context, cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	recognizer, err := ocr.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create OCR client: %w", err)
	}

	s := &Server{
		db:         database,
		recognizer: recognizer,
		parser:     schedule.NewParser(cfg.ParserOpts),
	}

	// Calendar sync is optional; without credentials the sync and auth
	// routes answer 503 instead of the server refusing to start.
	if cfg.Google.ClientID != "" {
		flow, err := gcal.NewOAuthFlow(cfg.Google)
		if err != nil {
			database.Close()
			return nil, err
		}
		s.oauthFlow = flow
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("PUT /sessions/{id}/shifts/{shift_id}", s.handleUpdateShift)
	mux.HandleFunc("DELETE /sessions/{id}/shifts/{shift_id}", s.handleDeleteShift)
	mux.HandleFunc("GET /sessions/{id}/calendar.ics", s.handleSessionICS)
	mux.HandleFunc("POST /sessions/{id}/sync", s.handleSync)
	mux.HandleFunc("GET /auth/google", s.handleGoogleAuth)
	mux.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	return s, nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.recognizer.Close(); err != nil {
		log.Printf("Error closing OCR client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// jsonResponse writes a JSON response with the given status
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
