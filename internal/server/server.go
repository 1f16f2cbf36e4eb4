package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/structuring"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	sessions    *store.SessionManager
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate

	llmClient  llm.Client
	structurer *structuring.Adapter
	enhancer   *enhance.Adapter
}

// Config holds server configuration
type Config struct {
	Port       int
	APIKey     string
	Model      string // Optional override for the standard-tier model
	SessionTTL time.Duration
}

// New creates a new server instance. A missing API key is not fatal:
// the two AI endpoints report the missing credential while local state
// and PDF generation keep working.
func New(ctx context.Context, cfg Config) (*Server, error) {
	var client llm.Client
	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		c, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	} else {
		log.Println("GEMINI_API_KEY not set; AI endpoints disabled")
	}

	return newServer(cfg, client), nil
}

// newServer wires the handler chain around an already-constructed LLM
// client. A nil client leaves the AI adapters unset.
func newServer(cfg Config, client llm.Client) *Server {
	s := &Server{
		sessions:    store.NewSessionManager(cfg.SessionTTL),
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultRules()),
		validate:    validator.New(),
	}

	if client != nil {
		s.llmClient = client
		s.structurer = structuring.New(client)
		s.enhancer = enhance.New(client)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	// Resume document endpoints (session-scoped)
	mux.HandleFunc("POST /api/resume/process", s.handleProcessResume)
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume", s.handleReplaceResume)
	mux.HandleFunc("PUT /api/resume/personal-info", s.handleUpdatePersonalInfo)
	mux.HandleFunc("PUT /api/resume/skills", s.handleUpdateSkills)
	mux.HandleFunc("GET /api/resume/preview", s.handlePreview)

	// Repeated-record list endpoints
	mux.HandleFunc("POST /api/resume/{list}", s.handleAddRecord)
	mux.HandleFunc("PATCH /api/resume/{list}/{id}", s.handleUpdateRecord)
	mux.HandleFunc("DELETE /api/resume/{list}/{id}", s.handleRemoveRecord)

	// AI and export endpoints
	mux.HandleFunc("POST /api/ai-suggestions", s.handleAISuggestions)
	mux.HandleFunc("POST /api/generate-pdf", s.handleGeneratePDF)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.withSession(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
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

	s.rateLimiter.Stop()
	s.sessions.Stop()
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// Handler returns the server's HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit throttles the endpoints that cost a language-model call.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path)
		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			log.Printf("[rate-limit] Rate limit exceeded for %s on %s", s.extractClientID(r), r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
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

// adapterError logs an adapter failure and converts it into a
// user-visible error response. Failures never mutate session state.
func (s *Server) adapterError(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
